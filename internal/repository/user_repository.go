package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"gghubblog/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser регистрирует пользователя и возвращает его id.
// Email проверяется на уникальность до вставки.
func (r *userRepository) CreateUser(ctx context.Context, email, nickname, password string) (int, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return 0, fmt.Errorf("ошибка при проверке email: %w", err)
	}
	if exists {
		return 0, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	var userID int
	query := `
		INSERT INTO users (email, password_hash, nickname)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err = r.db.GetContext(ctx, &userID, query, email, string(hashedPassword), nickname)
	if err != nil {
		// гонка между проверкой и вставкой упирается в UNIQUE-констрейнт
		if strings.Contains(err.Error(), "duplicate key value") {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return userID, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `
		SELECT id, email, password_hash, nickname, bio, banner_url, status, role, is_active,
		       to_char(created_at, 'DD.MM.YYYY') AS created_at
		FROM users
		WHERE email = $1
	`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return &user, nil
}

// VerifyPassword сравнивает пароль с хешем. bcrypt сравнивает за постоянное
// время, отдельная защита от тайминг-атак не нужна.
func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (r *userRepository) GetProfile(ctx context.Context, userID int, includeEmail bool) (*models.Profile, error) {
	var profile models.Profile

	// владельцу профиля дополнительно отдается email
	columns := `id, nickname, bio, banner_url, status, is_active, to_char(created_at, 'DD.MM.YYYY') AS created_at`
	if includeEmail {
		columns += `, email`
	}

	query := `SELECT ` + columns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении профиля: %w", err)
	}

	return &profile, nil
}

func (r *userRepository) GetNickname(ctx context.Context, userID int) (string, error) {
	var nickname string

	err := r.db.GetContext(ctx, &nickname, `SELECT nickname FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("ошибка при получении никнейма: %w", err)
	}

	return nickname, nil
}

func (r *userRepository) GetRole(ctx context.Context, userID int) (string, error) {
	var role string

	err := r.db.GetContext(ctx, &role, `SELECT role FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("ошибка при получении роли: %w", err)
	}

	return role, nil
}

// profileColumns - фиксированный список колонок, доступных для частичного
// обновления профиля. Имена колонок берутся только отсюда, никогда из
// пользовательского ввода.
var profileColumns = map[string]string{
	"status":   "status",
	"nickname": "nickname",
	"bio":      "bio",
}

// UpdateProfile собирает UPDATE только из присланных полей.
func (r *userRepository) UpdateProfile(ctx context.Context, userID int, fields map[string]string) error {
	assignments := make([]string, 0, len(profileColumns))
	values := make([]interface{}, 0, len(profileColumns)+1)

	// стабильный порядок, чтобы запрос был детерминированным
	for _, key := range []string{"status", "nickname", "bio"} {
		value, ok := fields[key]
		if !ok {
			continue
		}
		values = append(values, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", profileColumns[key], len(values)))
	}

	if len(assignments) == 0 {
		return ErrNoUpdatableFields
	}

	values = append(values, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(assignments, ", "), len(values))

	result, err := r.db.ExecContext(ctx, query, values...)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении профиля: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) UpdateBannerURL(ctx context.Context, userID int, bannerURL string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET banner_url = $1 WHERE id = $2`, bannerURL, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении баннера: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
