// Command seed populates the database with demo content for local
// development. Not intended for production use.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 30, "number of posts to create")
	comments := flag.Int("comments", 5, "comments per post")
	clean := flag.Bool("clean", false, "delete existing data before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seeder := seed.NewSeeder(db, seed.Options{
		Users:           *users,
		Posts:           *posts,
		CommentsPerPost: *comments,
	})

	if *clean {
		log.Println("Clearing existing data...")
		if err := seeder.ClearAll(); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
	}

	if err := seeder.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
