package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gghubblog/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT p.id,
		       to_char(p.created_at, 'DD.MM.YYYY, HH24:MI') AS created_at,
		       to_char(p.updated_at, 'DD.MM.YYYY, HH24:MI') AS updated_at,
		       p.title,
		       p.content,
		       p.author_id,
		       p.is_pinned,
		       p.is_ad,
		       p.comment_count,
		       u.nickname AS author_nickname
		FROM posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY COALESCE(p.updated_at, p.created_at) DESC
	`

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int) (*models.Post, error) {
	query := `
		SELECT p.id,
		       p.title,
		       p.content,
		       to_char(p.created_at, 'DD.MM.YYYY, HH24:MI') AS created_at,
		       to_char(p.updated_at, 'DD.MM.YYYY, HH24:MI') AS updated_at,
		       p.author_id,
		       p.is_pinned,
		       p.is_ad,
		       p.comment_count,
		       u.nickname AS author_nickname
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1
	`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, title, content string, authorID int) (*models.Post, error) {
	query := `
		INSERT INTO posts (title, content, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, to_char(created_at, 'DD.MM.YYYY, HH24:MI') AS created_at
	`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, title, content, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании поста: %w", err)
	}

	post.Title = title
	post.Content = content
	post.AuthorID = authorID

	return &post, nil
}

// Update меняет пост по составному условию id + author_id. Ноль затронутых
// строк не различает "нет поста" и "чужой пост".
func (r *postRepository) Update(ctx context.Context, postID, authorID int, title, content string) (string, error) {
	query := `
		UPDATE posts
		SET title = $1, content = $2, updated_at = now()
		WHERE id = $3 AND author_id = $4
		RETURNING to_char(updated_at, 'DD.MM.YYYY, HH24:MI')
	`

	var updatedAt string
	err := r.db.GetContext(ctx, &updatedAt, query, title, content, postID, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFoundOrForbidden
		}
		return "", fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	return updatedAt, nil
}

func (r *postRepository) Delete(ctx context.Context, postID, authorID int) error {
	query := `DELETE FROM posts WHERE id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, authorID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFoundOrForbidden
	}

	return nil
}

// optionColumns - единственный источник имен колонок для переключателя
// опций. Ключ приходит от клиента, колонка - только из этой таблицы.
var optionColumns = map[string]string{
	"is_pinned": "is_pinned",
	"is_ad":     "is_ad",
}

// OptionColumn возвращает имя колонки для ключа опции из фиксированного
// списка разрешенных.
func OptionColumn(option string) (string, bool) {
	column, ok := optionColumns[option]
	return column, ok
}

// ToggleOption читает текущее значение опции и сохраняет противоположное.
// Чтение и запись идут в одной транзакции, чтобы параллельные переключения
// не потеряли друг друга.
func (r *postRepository) ToggleOption(ctx context.Context, postID int, column string) (bool, error) {
	if _, ok := optionColumns[column]; !ok {
		return false, fmt.Errorf("недопустимая колонка опции: %s", column)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var current bool
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id = $1 FOR UPDATE`, column)
	err = tx.GetContext(ctx, &current, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("ошибка при чтении опции поста: %w", err)
	}

	newValue := !current

	query = fmt.Sprintf(`UPDATE posts SET %s = $1 WHERE id = $2`, column)
	_, err = tx.ExecContext(ctx, query, newValue, postID)
	if err != nil {
		return false, fmt.Errorf("ошибка при обновлении опции поста: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return newValue, nil
}
