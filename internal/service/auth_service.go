package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gghubblog/internal/config"
	"gghubblog/internal/models"
	"gghubblog/internal/repository"
)

// Ошибки проверки токена. Обе ведут к 401, но с разными сообщениями.
var (
	ErrTokenExpired = errors.New("токен просрочен")
	ErrTokenInvalid = errors.New("невалидный токен")
)

type AuthService interface {
	Register(ctx context.Context, email, nickname, password string) (int, string, int64, error)
	Login(ctx context.Context, email, password string) (*models.User, string, int64, error)
	IssueToken(userID int, email string) (string, int64, error)
	VerifyToken(tokenString string) (int, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register создает пользователя и сразу выдает токен (автологин после
// регистрации).
func (s *authService) Register(ctx context.Context, email, nickname, password string) (int, string, int64, error) {
	userID, err := s.userRepo.CreateUser(ctx, email, nickname, password)
	if err != nil {
		return 0, "", 0, err
	}

	token, exp, err := s.IssueToken(userID, email)
	if err != nil {
		return 0, "", 0, fmt.Errorf("ошибка генерации токена: %w", err)
	}

	return userID, token, exp, nil
}

// Login ищет пользователя только по email и сверяет пароль с хешем.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, int64, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", 0, err
	}

	token, exp, err := s.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", 0, fmt.Errorf("ошибка генерации токена: %w", err)
	}

	return user, token, exp, nil
}

// IssueToken подписывает HS256-токен со строковым subject, чтобы не зависеть
// от числовых типов на транспорте. Срок жизни фиксированный, refresh-токенов
// нет - по истечении нужен повторный вход.
func (s *authService) IssueToken(userID int, email string) (string, int64, error) {
	now := time.Now()
	exp := now.Add(s.cfg.TokenDuration).Unix()

	claims := jwt.MapClaims{
		"sub":   strconv.Itoa(userID),
		"email": email,
		"iat":   now.Unix(),
		"exp":   exp,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", 0, fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, exp, nil
}

// VerifyToken проверяет подпись и срок действия и возвращает id пользователя
// из subject. exp обязателен.
func (s *authService) VerifyToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrTokenInvalid
	}

	userID, err := strconv.Atoi(sub)
	if err != nil {
		return 0, ErrTokenInvalid
	}

	return userID, nil
}
