package handlers

import (
	"github.com/go-playground/validator/v10"

	"gghubblog/internal/cache"
	"gghubblog/internal/config"
	"gghubblog/internal/database"
	"gghubblog/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	CommentService service.CommentService
	Cache          cache.Cache
	DB             *database.DB
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, db *database.DB, postsCache cache.Cache, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		PostService:    services.Post,
		CommentService: services.Comment,
		Cache:          postsCache,
		DB:             db,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
