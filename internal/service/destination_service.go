package service

import (
	"context"

	"waypoint/internal/models"
	"waypoint/internal/repository"

	"github.com/google/uuid"
)

// DestinationService manages the destination catalog. Creating and editing
// destinations is an admin concern; reading is open to everyone.
type DestinationService struct {
	destinationRepo repository.DestinationRepository
	isAdmin         func(ctx context.Context, userID uuid.UUID) (bool, error)
}

type CreateDestinationInput struct {
	UserID      uuid.UUID
	Name        string
	Description string
	Location    string
	Images      []string
}

type UpdateDestinationInput struct {
	UserID        uuid.UUID
	DestinationID uuid.UUID
	Name          string
	Description   string
	Location      string
	Images        []string
}

type DeleteDestinationInput struct {
	UserID        uuid.UUID
	DestinationID uuid.UUID
}

func NewDestinationService(
	destinationRepo repository.DestinationRepository,
	isAdmin func(ctx context.Context, userID uuid.UUID) (bool, error),
) *DestinationService {
	return &DestinationService{
		destinationRepo: destinationRepo,
		isAdmin:         isAdmin,
	}
}

func (s *DestinationService) requireAdmin(ctx context.Context, userID uuid.UUID) error {
	if s.isAdmin == nil {
		return models.NewUnauthorizedError("Admin access required")
	}
	admin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewUnauthorizedError("Admin access required")
	}
	return nil
}

func (s *DestinationService) CreateDestination(ctx context.Context, in CreateDestinationInput) (*models.Destination, error) {
	if err := s.requireAdmin(ctx, in.UserID); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if in.Location == "" {
		return nil, models.NewValidationError("Location is required")
	}

	destination := &models.Destination{
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		Images:      in.Images,
		CreatedByID: in.UserID,
	}
	if err := s.destinationRepo.Create(ctx, destination); err != nil {
		return nil, err
	}
	return destination, nil
}

func (s *DestinationService) GetDestination(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	return s.destinationRepo.GetByID(ctx, id)
}

func (s *DestinationService) ListDestinations(ctx context.Context, limit, offset int, search, sort string) ([]*models.Destination, error) {
	return s.destinationRepo.List(ctx, limit, offset, search, sort)
}

func (s *DestinationService) UpdateDestination(ctx context.Context, in UpdateDestinationInput) (*models.Destination, error) {
	if err := s.requireAdmin(ctx, in.UserID); err != nil {
		return nil, err
	}

	destination, err := s.destinationRepo.GetByID(ctx, in.DestinationID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		destination.Name = in.Name
	}
	if in.Description != "" {
		destination.Description = in.Description
	}
	if in.Location != "" {
		destination.Location = in.Location
	}
	if in.Images != nil {
		destination.Images = in.Images
	}

	if err := s.destinationRepo.Update(ctx, destination); err != nil {
		return nil, err
	}
	return destination, nil
}

func (s *DestinationService) DeleteDestination(ctx context.Context, in DeleteDestinationInput) error {
	if err := s.requireAdmin(ctx, in.UserID); err != nil {
		return err
	}

	if _, err := s.destinationRepo.GetByID(ctx, in.DestinationID); err != nil {
		return err
	}
	return s.destinationRepo.Delete(ctx, in.DestinationID)
}
