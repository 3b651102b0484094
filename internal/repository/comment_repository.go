package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gghubblog/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `
	c.id,
	c.post_id,
	c.user_id,
	u.nickname,
	c.content,
	c.parent_id,
	to_char(c.created_at, 'DD.MM.YYYY "в" HH24:MI') AS created_at
`

func (r *commentRepository) GetByPostID(ctx context.Context, postID int) ([]models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at
	`

	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

// Create вставляет комментарий и увеличивает comment_count поста в одной
// транзакции: либо появляются и строка, и инкремент, либо ничего.
func (r *commentRepository) Create(ctx context.Context, postID, userID int, content string, parentID *int) (*models.Comment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var commentID int
	query := `
		INSERT INTO comments (post_id, user_id, content, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err = tx.GetContext(ctx, &commentID, query, postID, userID, content, parentID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при добавлении комментария: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1`, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при обновлении счетчика комментариев: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	// перечитываем строку вместе с никнеймом автора для ответа
	var comment models.Comment
	query = `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.id = $1
	`

	err = tx.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении комментария: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return &comment, nil
}

// Delete удаляет комментарий по составному условию id + user_id, чтобы между
// проверкой прав и удалением не было гонки, и уменьшает comment_count поста
// не ниже нуля.
func (r *commentRepository) Delete(ctx context.Context, commentID, userID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var postID int
	err = tx.GetContext(ctx, &postID, `SELECT post_id FROM comments WHERE id = $1`, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrForbidden
		}
		return fmt.Errorf("ошибка при поиске комментария: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении комментария: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrForbidden
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE posts SET comment_count = GREATEST(0, comment_count - 1) WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении счетчика комментариев: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}
