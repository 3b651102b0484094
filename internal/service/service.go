package service

import (
	"gghubblog/internal/config"
	"gghubblog/internal/repository"
	"gghubblog/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Comment CommentService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    NewUserService(rep.User, storage, cfg),
		Post:    NewPostService(rep.Post, rep.User, cfg),
		Comment: NewCommentService(rep.Comment),
	}
}
