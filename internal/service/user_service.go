package service

import (
	"context"
	"io"

	"gghubblog/internal/config"
	"gghubblog/internal/models"
	"gghubblog/internal/repository"
	"gghubblog/internal/storage"
)

type UserService interface {
	GetProfile(ctx context.Context, targetUserID, currentUserID int) (*models.Profile, bool, error)
	UpdateProfile(ctx context.Context, userID int, fields map[string]string) error
	UploadBanner(ctx context.Context, userID int, fileName string, file io.Reader, size int64) (string, error)
	UploadAttachment(ctx context.Context, fileName string, file io.Reader, size int64) (string, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

// GetProfile отдает профиль в одном из двух видов: владельцу - с email,
// всем остальным - публичный. Несовпадение identity не ошибка, а редактирование
// полей.
func (s *userService) GetProfile(ctx context.Context, targetUserID, currentUserID int) (*models.Profile, bool, error) {
	isOwner := currentUserID != 0 && currentUserID == targetUserID

	profile, err := s.userRepo.GetProfile(ctx, targetUserID, isOwner)
	if err != nil {
		return nil, false, err
	}

	return profile, isOwner, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int, fields map[string]string) error {
	return s.userRepo.UpdateProfile(ctx, userID, fields)
}

// UploadBanner кладет файл в хранилище и сохраняет URL в профиле.
func (s *userService) UploadBanner(ctx context.Context, userID int, fileName string, file io.Reader, size int64) (string, error) {
	bannerURL, err := s.storage.UploadFile(ctx, "userbanner", fileName, file, size)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateBannerURL(ctx, userID, bannerURL); err != nil {
		return "", err
	}

	return bannerURL, nil
}

// UploadAttachment сохраняет вложение и возвращает его URL. В БД ничего
// не пишется, ссылку клиент вставляет в текст поста сам.
func (s *userService) UploadAttachment(ctx context.Context, fileName string, file io.Reader, size int64) (string, error) {
	return s.storage.UploadFile(ctx, "attachments", fileName, file, size)
}
