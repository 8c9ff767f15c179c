package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Article is an editorial piece written by an author. Unlike every other
// content entity, deleting an article removes the row and its stored image
// files outright; there is no soft-delete or restore for articles.
//
// LikeCount and SaveCount are derived columns maintained by the action ledger.
type Article struct {
	ID      uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title   string                      `gorm:"size:255;not null" json:"title"`
	Content string                      `gorm:"type:text;not null" json:"content"`
	Images  datatypes.JSONSlice[string] `json:"images"`

	LikeCount int `gorm:"not null;default:0" json:"like_count"`
	SaveCount int `gorm:"not null;default:0" json:"save_count"`

	AuthorID uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments []Comment `gorm:"foreignKey:ArticleID" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (a *Article) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
