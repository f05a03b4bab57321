package repository

import (
	"context"

	"gorm.io/gorm"

	"threadapi/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]model.Post, error)
	DeleteWithComments(ctx context.Context, id uint) (postCount, commentCount int64, err error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// DeleteWithComments removes a post and all its comments as a single logical
// unit. The comments go first; if the post delete then fails the whole
// transaction rolls back. Returns gorm.ErrRecordNotFound when the post does
// not exist, with zero counts.
func (r *postRepository) DeleteWithComments(ctx context.Context, id uint) (int64, int64, error) {
	var postCount, commentCount int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}

		res := tx.Where("post_id = ?", id).Delete(&model.Comment{})
		if res.Error != nil {
			return res.Error
		}
		commentCount = res.RowsAffected

		res = tx.Delete(&model.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		postCount = res.RowsAffected

		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return postCount, commentCount, nil
}
