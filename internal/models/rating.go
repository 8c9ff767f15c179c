package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating score bounds enforced before any rating write.
const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating is a scored review of a destination. A user may submit more than one
// rating for the same destination; each submission is a new row and the
// destination aggregate is recomputed over all non-deleted rows.
type Rating struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DestinationID uuid.UUID `gorm:"type:uuid;not null;index" json:"destination_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Score         int       `gorm:"not null" json:"score"`
	Comment       string    `gorm:"type:text" json:"comment"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (r *Rating) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ValidScore reports whether score is within the accepted 1..5 range.
func ValidScore(score int) bool {
	return score >= MinRatingScore && score <= MaxRatingScore
}
