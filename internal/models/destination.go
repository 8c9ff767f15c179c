package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Destination represents a place travellers can browse, rate, like and save.
//
// AverageRating, RatingCount, LikeCount and SaveCount are derived columns.
// They are only ever written by the aggregate recompute inside the rating and
// action repositories, never from client input.
type Destination struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Location    string                      `gorm:"size:255;not null" json:"location"`
	Images      datatypes.JSONSlice[string] `json:"images"`

	AverageRating float64 `gorm:"type:decimal(4,2);not null;default:0" json:"average_rating"`
	RatingCount   int     `gorm:"not null;default:0" json:"rating_count"`
	LikeCount     int     `gorm:"not null;default:0" json:"like_count"`
	SaveCount     int     `gorm:"not null;default:0" json:"save_count"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Ratings     []Rating  `gorm:"foreignKey:DestinationID" json:"ratings,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (d *Destination) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
