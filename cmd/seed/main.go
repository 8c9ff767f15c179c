// Command seed populates the database with demo data for local development.
package main

import (
	"flag"
	"log"

	"waypoint/internal/config"
	"waypoint/internal/database"
	"waypoint/internal/seed"
)

func main() {
	users := flag.Int("users", 25, "number of users to create")
	destinations := flag.Int("destinations", 15, "number of destinations to create")
	articles := flag.Int("articles", 40, "number of articles to create")
	clean := flag.Bool("clean", false, "remove existing data before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:        *users,
		NumDestinations: *destinations,
		NumArticles:     *articles,
		ShouldClean:     *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All seeded accounts share the password %q", seed.SharedPassword)
}
