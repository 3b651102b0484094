package test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"gghubblog/internal/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, nickname, password string) (int, string, int64, error) {
	args := m.Called(ctx, email, nickname, password)
	return args.Int(0), args.String(1), args.Get(2).(int64), args.Error(3)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, int64, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", 0, args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.Get(2).(int64), args.Error(3)
}

func (m *MockAuthService) IssueToken(userID int, email string) (string, int64, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuthService) VerifyToken(tokenString string) (int, error) {
	args := m.Called(tokenString)
	return args.Int(0), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, targetUserID, currentUserID int) (*models.Profile, bool, error) {
	args := m.Called(ctx, targetUserID, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Profile), args.Bool(1), args.Error(2)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID int, fields map[string]string) error {
	args := m.Called(ctx, userID, fields)
	return args.Error(0)
}

func (m *MockUserService) UploadBanner(ctx context.Context, userID int, fileName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, userID, fileName, file, size)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) UploadAttachment(ctx context.Context, fileName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, fileName, file, size)
	return args.String(0), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) GetPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID int) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, title, content string, authorID int) (*models.Post, error) {
	args := m.Called(ctx, title, content, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, postID, authorID int, title, content string) (string, error) {
	args := m.Called(ctx, postID, authorID, title, content)
	return args.String(0), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID, authorID int) error {
	args := m.Called(ctx, postID, authorID)
	return args.Error(0)
}

func (m *MockPostService) ToggleOption(ctx context.Context, currentUserID, postID int, option string) (bool, error) {
	args := m.Called(ctx, currentUserID, postID, option)
	return args.Bool(0), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) GetComments(ctx context.Context, postID int) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentService) AddComment(ctx context.Context, postID, userID int, content string, parentID *int) (*models.Comment, error) {
	args := m.Called(ctx, postID, userID, content, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID, userID int) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
