package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "threadapi/internal/errors"
	"threadapi/internal/model"
	"threadapi/internal/repository"
)

// CommentService owns comments on posts.
type CommentService interface {
	CreateComment(ctx context.Context, authorID, postID uint, content string) (*model.Comment, error)
	ListCommentsForPostAndAuthor(ctx context.Context, authorID, postID uint) ([]model.Comment, error)
	GetComment(ctx context.Context, id uint) (*model.Comment, error)
	DeleteComment(ctx context.Context, id uint) (int64, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	log         *logrus.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, log *logrus.Logger) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		log:         log,
	}
}

// CreateComment stores a comment by authorID on an existing post. The post
// must exist: a comment is never created against a dangling post ID.
func (s *commentService) CreateComment(ctx context.Context, authorID, postID uint, content string) (*model.Comment, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		Content:  content,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Infof("comment %d created by user %d on post %d", comment.ID, authorID, postID)
	return comment, nil
}

// ListCommentsForPostAndAuthor returns the caller's own comments on the
// given post. The narrowing to the authenticated author is intentional.
func (s *commentService) ListCommentsForPostAndAuthor(ctx context.Context, authorID, postID uint) ([]model.Comment, error) {
	return s.commentRepo.ListByPostAndAuthor(ctx, postID, authorID)
}

func (s *commentService) GetComment(ctx context.Context, id uint) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a single comment and reports the count removed.
func (s *commentService) DeleteComment(ctx context.Context, id uint) (int64, error) {
	count, err := s.commentRepo.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, apperrors.ErrCommentNotFound
	}

	s.log.Infof("comment %d deleted", id)
	return count, nil
}
