package server

import (
	"context"
	"mime/multipart"

	"waypoint/internal/config"
	"waypoint/internal/featureflags"
	"waypoint/internal/mail"
	"waypoint/internal/models"
	"waypoint/internal/service"

	"github.com/google/uuid"
)

// Function-field repository stubs. Every field defaults to a not-found or
// no-op behavior so individual tests only override what they exercise.

type userRepoStub struct {
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateFn        func(ctx context.Context, user *models.User) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
	listFn          func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		},
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) {
			return nil, nil
		},
		createFn: func(_ context.Context, u *models.User) error {
			if u.ID == uuid.Nil {
				u.ID = uuid.New()
			}
			return nil
		},
		updateFn: func(context.Context, *models.User) error { return nil },
		deleteFn: func(context.Context, uuid.UUID) error { return nil },
		listFn:   func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
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

type destinationRepoStub struct {
	createFn  func(ctx context.Context, destination *models.Destination) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*models.Destination, error)
	listFn    func(ctx context.Context, limit, offset int, search, sort string) ([]*models.Destination, error)
	updateFn  func(ctx context.Context, destination *models.Destination) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func noopDestinationRepo() *destinationRepoStub {
	return &destinationRepoStub{
		createFn: func(context.Context, *models.Destination) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Destination, error) {
			return nil, models.NewNotFoundError("Destination", id)
		},
		listFn: func(context.Context, int, int, string, string) ([]*models.Destination, error) {
			return nil, nil
		},
		updateFn: func(context.Context, *models.Destination) error { return nil },
		deleteFn: func(context.Context, uuid.UUID) error { return nil },
	}
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

type articleRepoStub struct {
	createFn       func(ctx context.Context, article *models.Article) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*models.Article, error)
	listFn         func(ctx context.Context, limit, offset int, search, sort string) ([]*models.Article, error)
	listByAuthorFn func(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*models.Article, error)
	updateFn       func(ctx context.Context, article *models.Article) error
	deleteFn       func(ctx context.Context, id uuid.UUID) (*models.Article, error)
}

func noopArticleRepo() *articleRepoStub {
	return &articleRepoStub{
		createFn: func(context.Context, *models.Article) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Article, error) {
			return nil, models.NewNotFoundError("Article", id)
		},
		listFn: func(context.Context, int, int, string, string) ([]*models.Article, error) {
			return nil, nil
		},
		listByAuthorFn: func(context.Context, uuid.UUID, int, int) ([]*models.Article, error) {
			return nil, nil
		},
		updateFn: func(context.Context, *models.Article) error { return nil },
		deleteFn: func(_ context.Context, id uuid.UUID) (*models.Article, error) {
			return &models.Article{ID: id}, nil
		},
	}
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

type ratingRepoStub struct {
	createFn            func(ctx context.Context, rating *models.Rating) error
	getByIDFn           func(ctx context.Context, id uuid.UUID) (*models.Rating, error)
	listByDestinationFn func(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]*models.Rating, error)
	updateFn            func(ctx context.Context, rating *models.Rating) error
	deleteFn            func(ctx context.Context, id uuid.UUID) error
}

func noopRatingRepo() *ratingRepoStub {
	return &ratingRepoStub{
		createFn: func(context.Context, *models.Rating) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Rating, error) {
			return nil, models.NewNotFoundError("Rating", id)
		},
		listByDestinationFn: func(context.Context, uuid.UUID, int, int) ([]*models.Rating, error) {
			return nil, nil
		},
		updateFn: func(context.Context, *models.Rating) error { return nil },
		deleteFn: func(context.Context, uuid.UUID) error { return nil },
	}
}

func (s *ratingRepoStub) Create(ctx context.Context, r *models.Rating) error {
	return s.createFn(ctx, r)
}
func (s *ratingRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Rating, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ratingRepoStub) ListByDestination(ctx context.Context, destinationID uuid.UUID, limit, offset int) ([]*models.Rating, error) {
	return s.listByDestinationFn(ctx, destinationID, limit, offset)
}
func (s *ratingRepoStub) Update(ctx context.Context, r *models.Rating) error {
	return s.updateFn(ctx, r)
}
func (s *ratingRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

type commentRepoStub struct {
	createFn        func(ctx context.Context, comment *models.Comment) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	listByArticleFn func(ctx context.Context, articleID uuid.UUID, limit, offset int) ([]*models.Comment, error)
	updateFn        func(ctx context.Context, comment *models.Comment) error
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByArticleFn: func(context.Context, uuid.UUID, int, int) ([]*models.Comment, error) {
			return nil, nil
		},
		updateFn: func(context.Context, *models.Comment) error { return nil },
		deleteFn: func(context.Context, uuid.UUID) error { return nil },
	}
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByArticle(ctx context.Context, articleID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	return s.listByArticleFn(ctx, articleID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

type actionRepoStub struct {
	resolveTargetFn func(ctx context.Context, id uuid.UUID) (models.Target, error)
	toggleFn        func(ctx context.Context, userID uuid.UUID, target models.Target, actionType models.ActionType) (bool, error)
	isActiveFn      func(ctx context.Context, userID uuid.UUID, target models.Target, actionType models.ActionType) (bool, error)
	listByUserFn    func(ctx context.Context, userID uuid.UUID, actionType models.ActionType, limit, offset int) ([]*models.Action, error)
}

func noopActionRepo() *actionRepoStub {
	return &actionRepoStub{
		resolveTargetFn: func(_ context.Context, id uuid.UUID) (models.Target, error) {
			return models.Target{}, models.NewNotFoundError("Target", id)
		},
		toggleFn: func(context.Context, uuid.UUID, models.Target, models.ActionType) (bool, error) {
			return false, nil
		},
		isActiveFn: func(context.Context, uuid.UUID, models.Target, models.ActionType) (bool, error) {
			return false, nil
		},
		listByUserFn: func(context.Context, uuid.UUID, models.ActionType, int, int) ([]*models.Action, error) {
			return nil, nil
		},
	}
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

type assetStoreStub struct {
	saved   []string
	removed []string
}

func (s *assetStoreStub) Save(file *multipart.FileHeader) (string, error) {
	ref := "uploads/" + file.Filename
	s.saved = append(s.saved, ref)
	return ref, nil
}

func (s *assetStoreStub) Remove(ref string) error {
	s.removed = append(s.removed, ref)
	return nil
}

type testRepos struct {
	users        *userRepoStub
	destinations *destinationRepoStub
	articles     *articleRepoStub
	ratings      *ratingRepoStub
	comments     *commentRepoStub
	actions      *actionRepoStub
}

func defaultTestRepos() testRepos {
	return testRepos{
		users:        noopUserRepo(),
		destinations: noopDestinationRepo(),
		articles:     noopArticleRepo(),
		ratings:      noopRatingRepo(),
		comments:     noopCommentRepo(),
		actions:      noopActionRepo(),
	}
}

// newTestServer wires a Server around stub repositories. No database, Redis
// or asset store is involved.
func newTestServer(repos testRepos) *Server {
	s := &Server{
		config: &config.Config{
			Env:       "test",
			JWTSecret: "unit-test-secret-0123456789abcdef",
			ClientURL: "http://localhost:5173",
		},
		userRepo:     repos.users,
		destRepo:     repos.destinations,
		articleRepo:  repos.articles,
		ratingRepo:   repos.ratings,
		commentRepo:  repos.comments,
		actionRepo:   repos.actions,
		assets:       &assetStoreStub{},
		mailer:       mail.NoopMailer{},
		featureFlags: featureflags.NewManager("password_reset=on"),
	}

	s.userService = service.NewUserService(s.userRepo)
	s.destService = service.NewDestinationService(s.destRepo, s.isAdminByUserID)
	s.articleService = service.NewArticleService(s.articleRepo, s.userRepo, s.assets)
	s.ratingService = service.NewRatingService(s.ratingRepo, s.destRepo, s.isAdminByUserID)
	s.commentService = service.NewCommentService(s.commentRepo, s.articleRepo, s.isAdminByUserID)
	s.actionService = service.NewActionService(s.actionRepo)

	return s
}
