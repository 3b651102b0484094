package repository

import (
	"context"
	"errors"
	"gghubblog/internal/models"

	"github.com/jmoiron/sqlx"
)

// Сигнальные ошибки слоя хранения. Хендлеры сверяются с ними через errors.Is
// и подбирают HTTP-статус.
var (
	ErrNotFound = errors.New("запись не найдена")
	// ErrNotFoundOrForbidden: изменение/удаление поста с чужим author_id
	// неотличимо от изменения несуществующего поста, чтобы не раскрывать
	// существование чужих постов.
	ErrNotFoundOrForbidden = errors.New("пост не найден или нет прав на его изменение")
	ErrForbidden           = errors.New("нет прав на выполнение операции")
	ErrEmailTaken          = errors.New("пользователь с таким email уже существует")
	ErrInvalidCredentials  = errors.New("неверные данные")
	ErrNoUpdatableFields   = errors.New("нет данных для обновления")
	ErrInvalidOption       = errors.New("недопустимая опция")
)

type UserRepository interface {
	CreateUser(ctx context.Context, email, nickname, password string) (int, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	GetProfile(ctx context.Context, userID int, includeEmail bool) (*models.Profile, error)
	GetNickname(ctx context.Context, userID int) (string, error)
	GetRole(ctx context.Context, userID int) (string, error)
	UpdateProfile(ctx context.Context, userID int, fields map[string]string) error
	UpdateBannerURL(ctx context.Context, userID int, bannerURL string) error
}

type PostRepository interface {
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, postID int) (*models.Post, error)
	Create(ctx context.Context, title, content string, authorID int) (*models.Post, error)
	Update(ctx context.Context, postID, authorID int, title, content string) (string, error)
	Delete(ctx context.Context, postID, authorID int) error
	ToggleOption(ctx context.Context, postID int, column string) (bool, error)
}

type CommentRepository interface {
	GetByPostID(ctx context.Context, postID int) ([]models.Comment, error)
	Create(ctx context.Context, postID, userID int, content string, parentID *int) (*models.Comment, error)
	Delete(ctx context.Context, commentID, userID int) error
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
	}
}
