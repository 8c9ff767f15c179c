package service

import (
	"context"

	"waypoint/internal/models"
	"waypoint/internal/repository"
	"waypoint/internal/validation"

	"github.com/google/uuid"
)

// UserService manages user profiles and the admin user surface.
type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID   uuid.UUID
	Username string
}

type ChangeRoleInput struct {
	AdminID  uuid.UUID
	TargetID uuid.UUID
	Role     models.UserRole
}

type DeleteUserInput struct {
	AdminID  uuid.UUID
	TargetID uuid.UUID
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != in.UserID {
		return nil, models.NewValidationError("Username already taken")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, adminID uuid.UUID, limit, offset int) ([]models.User, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, limit, offset)
}

// ChangeRole moves a user between the user, author and admin tiers.
func (s *UserService) ChangeRole(ctx context.Context, in ChangeRoleInput) (*models.User, error) {
	if err := s.requireAdmin(ctx, in.AdminID); err != nil {
		return nil, err
	}
	if !models.ValidRole(in.Role) {
		return nil, models.NewValidationError("Unknown role")
	}
	if in.AdminID == in.TargetID && in.Role != models.RoleAdmin {
		return nil, models.NewValidationError("Admins cannot demote themselves")
	}

	user, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	user.Role = in.Role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, in DeleteUserInput) error {
	if err := s.requireAdmin(ctx, in.AdminID); err != nil {
		return err
	}
	if in.AdminID == in.TargetID {
		return models.NewValidationError("Admins cannot delete themselves")
	}

	if _, err := s.userRepo.GetByID(ctx, in.TargetID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, in.TargetID)
}

// IsAdmin is injected into the other services as their admin check.
func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

func (s *UserService) requireAdmin(ctx context.Context, userID uuid.UUID) error {
	admin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewUnauthorizedError("Admin access required")
	}
	return nil
}
