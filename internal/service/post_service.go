package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"threadapi/internal/cache"
	apperrors "threadapi/internal/errors"
	"threadapi/internal/model"
	"threadapi/internal/repository"
)

const (
	postListCacheKey = "posts:all"
	postCacheTTL     = 5 * time.Minute
)

// PostService owns posts: creation under the caller's identity, reads, and
// the transactional post-plus-comments delete.
type PostService interface {
	CreatePost(ctx context.Context, authorID uint, title, content string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	GetPost(ctx context.Context, id uint) (*model.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uint) ([]model.Post, error)
	DeletePost(ctx context.Context, id uint) (deletedPosts, deletedComments int64, err error)
}

type postService struct {
	repo  repository.PostRepository
	cache *cache.Client
	log   *logrus.Logger
}

// NewPostService creates a new post service.
func NewPostService(repo repository.PostRepository, cache *cache.Client, log *logrus.Logger) PostService {
	return &postService{repo: repo, cache: cache, log: log}
}

// CreatePost stores a new post owned by authorID. The author always comes
// from the authenticated identity; any author field a client sends is
// discarded before this point.
func (s *postService) CreatePost(ctx context.Context, authorID uint, title, content string) (*model.Post, error) {
	post := &model.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, postListCacheKey)
	s.log.Infof("post %d created by user %d", post.ID, authorID)
	return post, nil
}

// ListPosts returns all posts with read-through caching.
func (s *postService) ListPosts(ctx context.Context) ([]model.Post, error) {
	if data, _ := s.cache.Get(ctx, postListCacheKey); data != nil {
		var cached []model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(posts); err == nil {
		_ = s.cache.Set(ctx, postListCacheKey, payload, postCacheTTL)
	}
	return posts, nil
}

func (s *postService) GetPost(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) ListPostsByAuthor(ctx context.Context, authorID uint) ([]model.Post, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// DeletePost removes a post and its comments in one transaction and reports
// how many records of each kind were removed. A missing post yields
// ErrPostNotFound with zero counts.
func (s *postService) DeletePost(ctx context.Context, id uint) (int64, int64, error) {
	postCount, commentCount, err := s.repo.DeleteWithComments(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, 0, apperrors.ErrPostNotFound
		}
		return 0, 0, err
	}

	_ = s.cache.Delete(ctx, postListCacheKey)
	s.log.Infof("post %d deleted (%d comments cascaded)", id, commentCount)
	return postCount, commentCount, nil
}
