package service

import (
	"context"

	"waypoint/internal/models"
	"waypoint/internal/repository"

	"github.com/google/uuid"
)

// ActionService drives the like/save ledger. A toggle resolves the raw
// target id to a typed target first, so handler code never dispatches on
// table names.
type ActionService struct {
	actionRepo repository.ActionRepository
}

type ToggleActionInput struct {
	UserID   uuid.UUID
	TargetID uuid.UUID
	Type     models.ActionType
}

// ToggleResult reports the state of the (user, target, type) pair after a
// toggle.
type ToggleResult struct {
	Active     bool              `json:"active"`
	TargetKind models.TargetKind `json:"target_kind"`
	TargetID   uuid.UUID         `json:"target_id"`
	Type       models.ActionType `json:"type"`
}

func NewActionService(actionRepo repository.ActionRepository) *ActionService {
	return &ActionService{actionRepo: actionRepo}
}

func (s *ActionService) Toggle(ctx context.Context, in ToggleActionInput) (*ToggleResult, error) {
	if !models.ValidActionType(in.Type) {
		return nil, models.NewValidationError("Unknown action type")
	}

	target, err := s.actionRepo.ResolveTarget(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	active, err := s.actionRepo.Toggle(ctx, in.UserID, target, in.Type)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{
		Active:     active,
		TargetKind: target.Kind,
		TargetID:   target.ID,
		Type:       in.Type,
	}, nil
}

// Status reports whether the pair is currently active without toggling it.
func (s *ActionService) Status(ctx context.Context, in ToggleActionInput) (*ToggleResult, error) {
	if !models.ValidActionType(in.Type) {
		return nil, models.NewValidationError("Unknown action type")
	}

	target, err := s.actionRepo.ResolveTarget(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	active, err := s.actionRepo.IsActive(ctx, in.UserID, target, in.Type)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{
		Active:     active,
		TargetKind: target.Kind,
		TargetID:   target.ID,
		Type:       in.Type,
	}, nil
}

// ListByUser returns the user's ledger rows of one type, newest first.
func (s *ActionService) ListByUser(ctx context.Context, userID uuid.UUID, actionType models.ActionType, limit, offset int) ([]*models.Action, error) {
	if !models.ValidActionType(actionType) {
		return nil, models.NewValidationError("Unknown action type")
	}
	return s.actionRepo.ListByUser(ctx, userID, actionType, limit, offset)
}
