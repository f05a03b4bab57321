package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"threadapi/internal/config"
	"threadapi/internal/db"
	"threadapi/internal/model"
	"threadapi/internal/repository"
)

// Demo fixtures, loaded idempotently. Running the seed twice changes nothing.
const (
	seedUsername = "Billy"
	seedEmail    = "billy@mail.com"
	seedPassword = "azerty123"

	seedPostTitle   = "Premier titre"
	seedPostContent = "Info du jour"

	seedCommentContent = "Je commente"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, seedEmail)
	if err == gorm.ErrRecordNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash seed password: %v", err)
		}
		user = &model.User{
			Username:     seedUsername,
			Email:        seedEmail,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create seed user: %v", err)
		}
		log.Printf("Created user %s (%s)", user.Username, user.Email)
	} else if err != nil {
		log.Fatalf("Failed to look up seed user: %v", err)
	} else {
		log.Printf("User %s already present, skipping", user.Email)
	}

	posts, err := postRepo.ListByAuthor(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list seed user's posts: %v", err)
	}

	var post *model.Post
	for i := range posts {
		if posts[i].Title == seedPostTitle {
			post = &posts[i]
			break
		}
	}
	if post == nil {
		post = &model.Post{
			Title:    seedPostTitle,
			Content:  seedPostContent,
			AuthorID: user.ID,
		}
		if err := postRepo.Create(ctx, post); err != nil {
			log.Fatalf("Failed to create seed post: %v", err)
		}
		log.Printf("Created post %q", post.Title)
	} else {
		log.Printf("Post %q already present, skipping", post.Title)
	}

	comments, err := commentRepo.ListByPostAndAuthor(ctx, post.ID, user.ID)
	if err != nil {
		log.Fatalf("Failed to list seed comments: %v", err)
	}
	if len(comments) == 0 {
		comment := &model.Comment{
			Content:  seedCommentContent,
			AuthorID: user.ID,
			PostID:   post.ID,
		}
		if err := commentRepo.Create(ctx, comment); err != nil {
			log.Fatalf("Failed to create seed comment: %v", err)
		}
		log.Printf("Created comment on post %d", post.ID)
	} else {
		log.Println("Comment already present, skipping")
	}

	log.Println("Seed completed")
}
