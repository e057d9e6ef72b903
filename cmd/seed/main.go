package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"starblog/internal/config"
	"starblog/internal/db"
	"starblog/internal/model"
	"starblog/internal/repository"
)

const postsAPIURL = "https://jsonplaceholder.typicode.com/posts"

const (
	seedAuthorUsername = "seed_author"
	seedAuthorEmail    = "seed_author@example.com"
	seedAuthorPassword = "seed-password-change-me"
)

// SeedPostData represents the structure from the external API.
type SeedPostData struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}, &model.Like{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Fetch demo posts from the external API
	log.Printf("Fetching posts from: %s", postsAPIURL)
	seedPosts, err := fetchPostsFromAPI(postsAPIURL)
	if err != nil {
		log.Fatalf("Failed to fetch posts: %v", err)
	}
	log.Printf("Fetched %d posts from API", len(seedPosts))

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	ctx := context.Background()

	author, err := ensureSeedAuthor(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to prepare seed author: %v", err)
	}
	log.Printf("Seeding posts under author %q (id=%d)", author.Username, author.ID)

	created, skipped, err := seedPostsIntoDB(ctx, postRepo, author.ID, seedPosts)
	if err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New posts created: %d", created)
	log.Printf("  - Existing posts skipped: %d", skipped)
}

// fetchPostsFromAPI fetches demo post data from the external API.
func fetchPostsFromAPI(url string) ([]SeedPostData, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var posts []SeedPostData
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return posts, nil
}

// ensureSeedAuthor finds or creates the user that owns seeded posts.
func ensureSeedAuthor(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByUsername(ctx, seedAuthorUsername)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error looking up seed author: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedAuthorPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing seed password: %w", err)
	}

	author := &model.User{
		Username:     seedAuthorUsername,
		Email:        seedAuthorEmail,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("error creating seed author: %w", err)
	}
	return author, nil
}

// seedPostsIntoDB inserts fetched posts, skipping titles that already exist.
func seedPostsIntoDB(ctx context.Context, repo repository.PostRepository, authorID uint, posts []SeedPostData) (created int, skipped int, err error) {
	for _, item := range posts {
		if item.Title == "" {
			skipped++
			continue
		}
		title := item.Title
		if len(title) > 225 {
			title = title[:225]
		}

		if _, err := repo.FindByTitle(ctx, title); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, skipped, fmt.Errorf("error checking post %q: %w", title, err)
		}

		post := &model.Post{
			Title:   title,
			Content: item.Body,
			UserID:  &authorID,
		}
		if err := repo.Create(ctx, post); err != nil {
			return created, skipped, fmt.Errorf("error creating post %q: %w", title, err)
		}
		created++
	}
	return created, skipped, nil
}
