package service

import (
	"context"

	"gghubblog/internal/config"
	"gghubblog/internal/models"
	"gghubblog/internal/repository"
)

type PostService interface {
	GetPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, postID int) (*models.Post, error)
	CreatePost(ctx context.Context, title, content string, authorID int) (*models.Post, error)
	UpdatePost(ctx context.Context, postID, authorID int, title, content string) (string, error)
	DeletePost(ctx context.Context, postID, authorID int) error
	ToggleOption(ctx context.Context, currentUserID, postID int, option string) (bool, error)
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (p *postService) GetPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetAll(ctx)
}

func (p *postService) GetPost(ctx context.Context, postID int) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

// CreatePost создает пост и подставляет в ответ никнейм автора. Никнейм
// читается на момент записи, в постах он не хранится.
func (p *postService) CreatePost(ctx context.Context, title, content string, authorID int) (*models.Post, error) {
	nickname, err := p.userRepo.GetNickname(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post, err := p.postRepo.Create(ctx, title, content, authorID)
	if err != nil {
		return nil, err
	}

	post.AuthorNickname = nickname

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, postID, authorID int, title, content string) (string, error) {
	return p.postRepo.Update(ctx, postID, authorID, title, content)
}

func (p *postService) DeletePost(ctx context.Context, postID, authorID int) error {
	return p.postRepo.Delete(ctx, postID, authorID)
}

// ToggleOption переключает is_pinned/is_ad. Доступно только пользователю с
// ролью admin.
func (p *postService) ToggleOption(ctx context.Context, currentUserID, postID int, option string) (bool, error) {
	role, err := p.userRepo.GetRole(ctx, currentUserID)
	if err != nil {
		return false, err
	}

	if role != "admin" {
		return false, repository.ErrForbidden
	}

	column, ok := repository.OptionColumn(option)
	if !ok {
		return false, repository.ErrInvalidOption
	}

	return p.postRepo.ToggleOption(ctx, postID, column)
}
