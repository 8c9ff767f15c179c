// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"waypoint/internal/models"
	"waypoint/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	NumDestinations int
	NumArticles     int
	ShouldClean     bool
}

// SharedPassword is the password assigned to every seeded account.
const SharedPassword = "Waypoint-Dev-Pass1!"

// Seed populates the database with demo data. Ratings and actions go through
// the repositories so every derived counter is produced by the same recompute
// path production writes use.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Seeding %d users, %d destinations, %d articles...",
		opts.NumUsers, opts.NumDestinations, opts.NumArticles)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	admin := users[0]
	destinations, err := createDestinations(db, admin, opts.NumDestinations)
	if err != nil {
		return fmt.Errorf("seed destinations: %w", err)
	}

	authors := make([]*models.User, 0)
	for _, u := range users {
		if u.CanPublish() {
			authors = append(authors, u)
		}
	}
	articles, err := createArticles(db, authors, opts.NumArticles)
	if err != nil {
		return fmt.Errorf("seed articles: %w", err)
	}

	if err := createRatings(db, r, users, destinations); err != nil {
		return fmt.Errorf("seed ratings: %w", err)
	}
	if err := createComments(db, r, users, articles); err != nil {
		return fmt.Errorf("seed comments: %w", err)
	}
	if err := createActions(db, r, users, articles, destinations); err != nil {
		return fmt.Errorf("seed actions: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Children first, FKs point upward
	for _, model := range []interface{}{
		&models.Action{}, &models.Comment{}, &models.Rating{},
		&models.Article{}, &models.Destination{}, &models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	if count < 3 {
		count = 3
	}

	// MinCost keeps large seeds fast, these are throwaway credentials
	hashed, err := bcrypt.GenerateFromPassword([]byte(SharedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	admin := &models.User{
		Username: "admin",
		Email:    "admin@waypoint.dev",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	users = append(users, admin)

	for i := 1; i < count; i++ {
		role := models.RoleUser
		if i%5 == 0 {
			role = models.RoleAuthor
		}
		users = append(users, &models.User{
			Username: fmt.Sprintf("%s-%s-%d",
				gofakeit.FirstName(), gofakeit.LastName(), i),
			Email:    fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			Password: string(hashed),
			Role:     role,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createDestinations(db *gorm.DB, creator *models.User, count int) ([]*models.Destination, error) {
	if count <= 0 {
		count = 10
	}

	destinations := make([]*models.Destination, 0, count)
	for i := 0; i < count; i++ {
		city := gofakeit.City()
		destinations = append(destinations, &models.Destination{
			Name:        city,
			Description: gofakeit.Paragraph(1, 3, 8, "\n"),
			Location:    fmt.Sprintf("%s, %s", city, gofakeit.Country()),
			Images: []string{
				fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
				fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
			},
			CreatedByID: creator.ID,
		})
	}

	if err := db.Create(&destinations).Error; err != nil {
		return nil, err
	}
	return destinations, nil
}

func createArticles(db *gorm.DB, authors []*models.User, count int) ([]*models.Article, error) {
	if len(authors) == 0 || count <= 0 {
		return nil, nil
	}

	articles := make([]*models.Article, 0, count)
	for i := 0; i < count; i++ {
		author := authors[i%len(authors)]
		articles = append(articles, &models.Article{
			Title:    gofakeit.Sentence(6),
			Content:  gofakeit.Paragraph(3, 5, 10, "\n\n"),
			AuthorID: author.ID,
			Images: []string{
				fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
			},
		})
	}

	if err := db.Create(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func createRatings(db *gorm.DB, r *rand.Rand, users []*models.User, destinations []*models.Destination) error {
	if len(destinations) == 0 {
		return nil
	}

	ctx := context.Background()
	ratingRepo := repository.NewRatingRepository(db)
	for _, user := range users {
		for i := 0; i < r.Intn(4); i++ {
			dest := destinations[r.Intn(len(destinations))]
			rating := &models.Rating{
				UserID:        user.ID,
				DestinationID: dest.ID,
				Score:         models.MinRatingScore + r.Intn(models.MaxRatingScore),
				Comment:       gofakeit.Sentence(10),
			}
			if err := ratingRepo.Create(ctx, rating); err != nil {
				return err
			}
		}
	}
	return nil
}

func createComments(db *gorm.DB, r *rand.Rand, users []*models.User, articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	comments := make([]*models.Comment, 0)
	for _, user := range users {
		for i := 0; i < r.Intn(3); i++ {
			article := articles[r.Intn(len(articles))]
			comments = append(comments, &models.Comment{
				UserID:    user.ID,
				ArticleID: article.ID,
				Content:   gofakeit.Sentence(12),
			})
		}
	}
	if len(comments) == 0 {
		return nil
	}
	return db.Create(&comments).Error
}

func createActions(db *gorm.DB, r *rand.Rand, users []*models.User, articles []*models.Article, destinations []*models.Destination) error {
	ctx := context.Background()
	actionRepo := repository.NewActionRepository(db)

	for _, user := range users {
		for i := 0; i < r.Intn(5); i++ {
			actionType := models.ActionLike
			if r.Intn(2) == 0 {
				actionType = models.ActionSave
			}

			var target models.Target
			if len(articles) > 0 && (len(destinations) == 0 || r.Intn(2) == 0) {
				target = models.Target{Kind: models.TargetArticle, ID: articles[r.Intn(len(articles))].ID}
			} else if len(destinations) > 0 {
				target = models.Target{Kind: models.TargetDestination, ID: destinations[r.Intn(len(destinations))].ID}
			} else {
				return nil
			}

			if _, err := actionRepo.Toggle(ctx, user.ID, target, actionType); err != nil {
				return err
			}
		}
	}
	return nil
}
