// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls the size and shape of the generated data set.
type Options struct {
	Users           int
	Posts           int
	CommentsPerPost int
	MaxDays         int // spread of created_at timestamps into the past
}

// Seeder populates the database with realistic demo content.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes all seeded content. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{"likes", "comments", "post_tags", "posts", "tags", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// tagPool is the vocabulary seeded posts draw their tags from. A small pool
// guarantees tag reuse, which makes /api/tags output interesting.
var tagPool = []string{
	"go", "web", "databases", "testing", "devops",
	"opinion", "tutorial", "news", "show-and-tell", "help",
}

func (s *Seeder) pastTime() time.Time {
	daysBack := s.rand.Intn(s.opts.MaxDays)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(s.rand.Intn(24)) * time.Hour).
		Add(-time.Duration(s.rand.Intn(60)) * time.Minute)
}

// CreateUser persists one fake user. The first user created is the admin.
func (s *Seeder) CreateUser(admin bool) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        gofakeit.Email(),
		Nickname:     fmt.Sprintf("%s%d", gofakeit.Username(), s.rand.Intn(10000)),
		PasswordHash: string(hash),
		IsAdmin:      admin,
		CreatedAt:    s.pastTime(),
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists one fake post for the given author with 0-3 tags.
func (s *Seeder) CreatePost(author *models.User) (*models.Post, error) {
	post := &models.Post{
		Title:     gofakeit.Sentence(5),
		Content:   gofakeit.Paragraph(2, 4, 8, "\n\n"),
		UserID:    author.ID,
		CreatedAt: s.pastTime(),
	}

	names := make([]string, 0, 3)
	for _, i := range s.rand.Perm(len(tagPool))[:s.rand.Intn(4)] {
		names = append(names, tagPool[i])
	}

	repo := repository.NewPostRepository(s.db)
	if err := repo.Create(context.Background(), post, names); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists one fake comment, optionally as a reply.
func (s *Seeder) CreateComment(post *models.Post, author *models.User, parentID *uint) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:          post.ID,
		UserID:          author.ID,
		Content:         gofakeit.Sentence(12),
		ParentCommentID: parentID,
		CreatedAt:       time.Now().Add(-time.Duration(s.rand.Intn(72)) * time.Hour),
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Run generates the full demo data set: users, posts with tags, one-level
// comment threads, and likes with consistent counters.
func (s *Seeder) Run() error {
	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		user, err := s.CreateUser(i == 0)
		if err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users (first one is admin)", len(users))

	likeRepo := repository.NewPostRepository(s.db)

	posts := make([]*models.Post, 0, s.opts.Posts)
	for i := 0; i < s.opts.Posts; i++ {
		author := users[s.rand.Intn(len(users))]
		post, err := s.CreatePost(author)
		if err != nil {
			return fmt.Errorf("seeding post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))

	var commentCount int
	for _, post := range posts {
		var parent *models.Comment
		for i := 0; i < s.opts.CommentsPerPost; i++ {
			author := users[s.rand.Intn(len(users))]

			var parentID *uint
			// Roughly a third of comments reply to the previous top-level one.
			if parent != nil && s.rand.Intn(3) == 0 {
				parentID = &parent.ID
			}

			comment, err := s.CreateComment(post, author, parentID)
			if err != nil {
				return fmt.Errorf("seeding comment on post %d: %w", post.ID, err)
			}
			if parentID == nil {
				parent = comment
			}
			commentCount++
		}
	}
	log.Printf("Seeded %d comments", commentCount)

	// Likes go through the repository so like_count stays consistent.
	var likeCount int
	for _, post := range posts {
		for _, user := range users {
			if s.rand.Intn(4) != 0 {
				continue
			}
			if _, _, err := likeRepo.ToggleLike(context.Background(), post.ID, user.ID); err != nil {
				return fmt.Errorf("seeding like on post %d: %w", post.ID, err)
			}
			likeCount++
		}
	}
	log.Printf("Seeded %d likes", likeCount)

	return nil
}
