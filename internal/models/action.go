package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActionType is the kind of engagement a user toggles on a target.
type ActionType string

const (
	// ActionLike marks a target as liked by the user.
	ActionLike ActionType = "LIKE"
	// ActionSave bookmarks a target for the user.
	ActionSave ActionType = "SAVE"
)

// ValidActionType reports whether t is a known action type.
func ValidActionType(t ActionType) bool {
	return t == ActionLike || t == ActionSave
}

// TargetKind names the concrete entity kind an action is attached to.
type TargetKind string

const (
	TargetArticle     TargetKind = "article"
	TargetDestination TargetKind = "destination"
)

// Target identifies the entity an action applies to. It is produced by
// resolving a raw identifier against both target tables, so a Target always
// refers to an existing row of a known kind.
type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

// Action is one row of the shared like/save ledger. Exactly one of ArticleID
// and DestinationID is set; which one is decided by the Target at construction
// time. Rows are created and hard-deleted by toggling, never updated.
//
// The partial unique indexes (user, article, type) and (user, destination,
// type) backstop the at-most-one-row invariant at the schema level; NULL
// target columns never collide.
type Action struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uniq_action_article,priority:1;uniqueIndex:uniq_action_destination,priority:1" json:"user_id"`
	ArticleID     *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_action_article,priority:2" json:"article_id,omitempty"`
	DestinationID *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_action_destination,priority:2" json:"destination_id,omitempty"`
	Type          ActionType `gorm:"type:varchar(10);not null;uniqueIndex:uniq_action_article,priority:3;uniqueIndex:uniq_action_destination,priority:3" json:"type"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (a *Action) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// NewAction builds a ledger row for the given actor, target and type. It is
// the only way action rows are constructed, which keeps the exactly-one-FK
// invariant out of reach of handler code.
func NewAction(userID uuid.UUID, target Target, actionType ActionType) (*Action, error) {
	if !ValidActionType(actionType) {
		return nil, NewValidationError("Unknown action type")
	}

	action := &Action{UserID: userID, Type: actionType}
	switch target.Kind {
	case TargetArticle:
		id := target.ID
		action.ArticleID = &id
	case TargetDestination:
		id := target.ID
		action.DestinationID = &id
	default:
		return nil, NewValidationError("Unknown action target kind")
	}
	return action, nil
}

// TargetOf returns the target this row points at.
func (a *Action) TargetOf() Target {
	if a.ArticleID != nil {
		return Target{Kind: TargetArticle, ID: *a.ArticleID}
	}
	return Target{Kind: TargetDestination, ID: *a.DestinationID}
}
