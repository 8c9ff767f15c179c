package service

import (
	"context"
	"testing"

	"waypoint/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminUserRepo(adminID uuid.UUID) *userRepoStub {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		role := models.RoleUser
		if id == adminID {
			role = models.RoleAdmin
		}
		return &models.User{ID: id, Role: role, Username: "someone"}, nil
	}
	return repo
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ctx := context.Background()

	t.Run("invalid username", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: userID, Username: "x"})
		assertValidationError(t, err)
	})

	t.Run("taken username", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Username: username}, nil
		}
		svc := NewUserService(repo)
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: userID, Username: "taken-name"})
		assertValidationError(t, err)
	})

	t.Run("renaming to own current name is allowed", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: userID, Username: username}, nil
		}
		svc := NewUserService(repo)
		user, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: userID, Username: "fresh-name"})
		require.NoError(t, err)
		assert.Equal(t, "fresh-name", user.Username)
	})
}

func TestUserService_ChangeRole(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	targetID := uuid.New()
	ctx := context.Background()

	t.Run("non-admin is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.ChangeRole(ctx, ChangeRoleInput{AdminID: targetID, TargetID: targetID, Role: models.RoleAuthor})
		assertUnauthorizedError(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(adminUserRepo(adminID))
		_, err := svc.ChangeRole(ctx, ChangeRoleInput{AdminID: adminID, TargetID: targetID, Role: "superuser"})
		assertValidationError(t, err)
	})

	t.Run("admin cannot demote self", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(adminUserRepo(adminID))
		_, err := svc.ChangeRole(ctx, ChangeRoleInput{AdminID: adminID, TargetID: adminID, Role: models.RoleUser})
		assertValidationError(t, err)
	})

	t.Run("admin promotes user to author", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(adminUserRepo(adminID))
		user, err := svc.ChangeRole(ctx, ChangeRoleInput{AdminID: adminID, TargetID: targetID, Role: models.RoleAuthor})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAuthor, user.Role)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	targetID := uuid.New()
	ctx := context.Background()

	t.Run("admin cannot delete self", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(adminUserRepo(adminID))
		err := svc.DeleteUser(ctx, DeleteUserInput{AdminID: adminID, TargetID: adminID})
		assertValidationError(t, err)
	})

	t.Run("admin deletes another user", func(t *testing.T) {
		t.Parallel()
		repo := adminUserRepo(adminID)
		var deleted uuid.UUID
		repo.deleteFn = func(_ context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		}
		svc := NewUserService(repo)
		err := svc.DeleteUser(ctx, DeleteUserInput{AdminID: adminID, TargetID: targetID})
		require.NoError(t, err)
		assert.Equal(t, targetID, deleted)
	})
}
