package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "threadapi/internal/errors"
	"threadapi/internal/model"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID uint) ([]model.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) DeleteWithComments(ctx context.Context, id uint) (int64, int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func TestPostService_CreatePost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
		return p.AuthorID == 7 && p.Title == "T" && p.Content == "C"
	})).Return(nil)

	svc := NewPostService(mockRepo, nil, newTestLogger())

	post, err := svc.CreatePost(context.Background(), 7, "T", "C")

	assert.NoError(t, err)
	assert.Equal(t, uint(7), post.AuthorID)
	mockRepo.AssertExpectations(t)
}

func TestPostService_ListPosts(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Post{
		{ID: 1, Title: "T", AuthorID: 7},
	}, nil)

	// nil cache: every read is a miss and the service still works
	svc := NewPostService(mockRepo, nil, newTestLogger())

	posts, err := svc.ListPosts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	mockRepo.AssertExpectations(t)
}

func TestPostService_DeletePost(t *testing.T) {
	tests := []struct {
		name             string
		setupMock        func(*MockPostRepository)
		expectedPosts    int64
		expectedComments int64
		expectedError    error
	}{
		{
			name: "delete cascades to comments",
			setupMock: func(m *MockPostRepository) {
				m.On("DeleteWithComments", mock.Anything, uint(1)).Return(int64(1), int64(2), nil)
			},
			expectedPosts:    1,
			expectedComments: 2,
		},
		{
			name: "missing post reports zero counts",
			setupMock: func(m *MockPostRepository) {
				m.On("DeleteWithComments", mock.Anything, uint(1)).Return(int64(0), int64(0), gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			tt.setupMock(mockRepo)

			svc := NewPostService(mockRepo, nil, newTestLogger())

			posts, comments, err := svc.DeletePost(context.Background(), 1)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Zero(t, posts)
				assert.Zero(t, comments)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedPosts, posts)
				assert.Equal(t, tt.expectedComments, comments)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_GetPost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewPostService(mockRepo, nil, newTestLogger())

	post, err := svc.GetPost(context.Background(), 9)

	assert.Equal(t, apperrors.ErrPostNotFound, err)
	assert.Nil(t, post)
}
