package service

// Repository stubs shared by the service tests. Each stub delegates to
// replaceable function fields so tests override only what they care about.

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"waypoint/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uuid.UUID) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uuid.UUID) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uuid.UUID) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

type destinationRepoStub struct {
	createFn  func(context.Context, *models.Destination) error
	getByIDFn func(context.Context, uuid.UUID) (*models.Destination, error)
	listFn    func(context.Context, int, int, string, string) ([]*models.Destination, error)
	updateFn  func(context.Context, *models.Destination) error
	deleteFn  func(context.Context, uuid.UUID) error
}

func (s *destinationRepoStub) Create(ctx context.Context, d *models.Destination) error {
	return s.createFn(ctx, d)
}
func (s *destinationRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	return s.getByIDFn(ctx, id)
}
func (s *destinationRepoStub) List(ctx context.Context, limit, offset int, search, sort string) ([]*models.Destination, error) {
	return s.listFn(ctx, limit, offset, search, sort)
}
func (s *destinationRepoStub) Update(ctx context.Context, d *models.Destination) error {
	return s.updateFn(ctx, d)
}
func (s *destinationRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopDestinationRepo() *destinationRepoStub {
	return &destinationRepoStub{
		createFn: func(_ context.Context, _ *models.Destination) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Destination, error) {
			return &models.Destination{ID: id}, nil
		},
		listFn: func(_ context.Context, _, _ int, _, _ string) ([]*models.Destination, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Destination) error { return nil },
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

type articleRepoStub struct {
	createFn       func(context.Context, *models.Article) error
	getByIDFn      func(context.Context, uuid.UUID) (*models.Article, error)
	listFn         func(context.Context, int, int, string, string) ([]*models.Article, error)
	listByAuthorFn func(context.Context, uuid.UUID, int, int) ([]*models.Article, error)
	updateFn       func(context.Context, *models.Article) error
	deleteFn       func(context.Context, uuid.UUID) (*models.Article, error)
}

func (s *articleRepoStub) Create(ctx context.Context, a *models.Article) error {
	return s.createFn(ctx, a)
}
func (s *articleRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	return s.getByIDFn(ctx, id)
}
func (s *articleRepoStub) List(ctx context.Context, limit, offset int, search, sort string) ([]*models.Article, error) {
	return s.listFn(ctx, limit, offset, search, sort)
}
func (s *articleRepoStub) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*models.Article, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *articleRepoStub) Update(ctx context.Context, a *models.Article) error {
	return s.updateFn(ctx, a)
}
func (s *articleRepoStub) Delete(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	return s.deleteFn(ctx, id)
}

func noopArticleRepo() *articleRepoStub {
	return &articleRepoStub{
		createFn: func(_ context.Context, _ *models.Article) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Article, error) {
			return &models.Article{ID: id}, nil
		},
		listFn: func(_ context.Context, _, _ int, _, _ string) ([]*models.Article, error) {
			return nil, nil
		},
		listByAuthorFn: func(_ context.Context, _ uuid.UUID, _, _ int) ([]*models.Article, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Article) error { return nil },
		deleteFn: func(_ context.Context, id uuid.UUID) (*models.Article, error) {
			return &models.Article{ID: id}, nil
		},
	}
}

type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uuid.UUID) (*models.Comment, error)
	listByArticleFn func(context.Context, uuid.UUID, int, int) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteFn        func(context.Context, uuid.UUID) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByArticle(ctx context.Context, articleID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	return s.listByArticleFn(ctx, articleID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByArticleFn: func(_ context.Context, _ uuid.UUID, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

type ratingRepoStub struct {
	createFn            func(context.Context, *models.Rating) error
	getByIDFn           func(context.Context, uuid.UUID) (*models.Rating, error)
	listByDestinationFn func(context.Context, uuid.UUID, int, int) ([]*models.Rating, error)
	updateFn            func(context.Context, *models.Rating) error
	deleteFn            func(context.Context, uuid.UUID) error
}

func (s *ratingRepoStub) Create(ctx context.Context, rating *models.Rating) error {
	return s.createFn(ctx, rating)
}
func (s *ratingRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Rating, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ratingRepoStub) ListByDestination(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]*models.Rating, error) {
	return s.listByDestinationFn(ctx, destinationID, limit, offset)
}
func (s *ratingRepoStub) Update(ctx context.Context, rating *models.Rating) error {
	return s.updateFn(ctx, rating)
}
func (s *ratingRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopRatingRepo() *ratingRepoStub {
	return &ratingRepoStub{
		createFn: func(_ context.Context, _ *models.Rating) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Rating, error) {
			return &models.Rating{ID: id}, nil
		},
		listByDestinationFn: func(_ context.Context, _ uuid.UUID, _, _ int) ([]*models.Rating, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Rating) error { return nil },
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

type actionRepoStub struct {
	resolveTargetFn func(context.Context, uuid.UUID) (models.Target, error)
	toggleFn        func(context.Context, uuid.UUID, models.Target, models.ActionType) (bool, error)
	isActiveFn      func(context.Context, uuid.UUID, models.Target, models.ActionType) (bool, error)
	listByUserFn    func(context.Context, uuid.UUID, models.ActionType, int, int) ([]*models.Action, error)
}

func (s *actionRepoStub) ResolveTarget(ctx context.Context, id uuid.UUID) (models.Target, error) {
	return s.resolveTargetFn(ctx, id)
}
func (s *actionRepoStub) Toggle(ctx context.Context, userID uuid.UUID, target models.Target, actionType models.ActionType) (bool, error) {
	return s.toggleFn(ctx, userID, target, actionType)
}
func (s *actionRepoStub) IsActive(ctx context.Context, userID uuid.UUID, target models.Target, actionType models.ActionType) (bool, error) {
	return s.isActiveFn(ctx, userID, target, actionType)
}
func (s *actionRepoStub) ListByUser(ctx context.Context, userID uuid.UUID, actionType models.ActionType, limit, offset int) ([]*models.Action, error) {
	return s.listByUserFn(ctx, userID, actionType, limit, offset)
}

func noopActionRepo() *actionRepoStub {
	return &actionRepoStub{
		resolveTargetFn: func(_ context.Context, id uuid.UUID) (models.Target, error) {
			return models.Target{Kind: models.TargetArticle, ID: id}, nil
		},
		toggleFn: func(_ context.Context, _ uuid.UUID, _ models.Target, _ models.ActionType) (bool, error) {
			return true, nil
		},
		isActiveFn: func(_ context.Context, _ uuid.UUID, _ models.Target, _ models.ActionType) (bool, error) {
			return false, nil
		},
		listByUserFn: func(_ context.Context, _ uuid.UUID, _ models.ActionType, _, _ int) ([]*models.Action, error) {
			return nil, nil
		},
	}
}

type assetStoreStub struct {
	saveFn   func(*multipart.FileHeader) (string, error)
	removeFn func(string) error
	removed  []string
}

func (s *assetStoreStub) Save(file *multipart.FileHeader) (string, error) {
	if s.saveFn != nil {
		return s.saveFn(file)
	}
	return "uploads/stub.jpg", nil
}
func (s *assetStoreStub) Remove(ref string) error {
	s.removed = append(s.removed, ref)
	if s.removeFn != nil {
		return s.removeFn(ref)
	}
	return nil
}

// alwaysAdmin and neverAdmin are canned isAdmin callbacks.
func alwaysAdmin(_ context.Context, _ uuid.UUID) (bool, error) { return true, nil }
func neverAdmin(_ context.Context, _ uuid.UUID) (bool, error)  { return false, nil }
