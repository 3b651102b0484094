package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	sqlxDB, mock, closeDB := newMockDB(t)
	defer closeDB()

	repo := NewPostRepository(sqlxDB)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("Заголовок нового поста", "Текст поста достаточной длины", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(7, "01.01.2025, 12:00"))

	post, err := repo.Create(ctx, "Заголовок нового поста", "Текст поста достаточной длины", 3)

	require.NoError(t, err)
	assert.Equal(t, 7, post.ID)
	assert.Equal(t, 3, post.AuthorID)
	assert.Equal(t, "Заголовок нового поста", post.Title)
	assert.Equal(t, "01.01.2025, 12:00", post.CreatedAt)
}

func TestPostRepository_GetByID(t *testing.T) {
	sqlxDB, mock, closeDB := newMockDB(t)
	defer closeDB()

	repo := NewPostRepository(sqlxDB)
	ctx := context.Background()

	t.Run("Пост найден", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "title", "content", "created_at", "updated_at",
			"author_id", "is_pinned", "is_ad", "comment_count", "author_nickname",
		}).AddRow(1, "Заголовок", "Текст", "01.01.2025, 10:00", nil, 3, false, false, 2, "Автор")

		mock.ExpectQuery(`FROM posts p`).
			WithArgs(1).
			WillReturnRows(rows)

		post, err := repo.GetByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Автор", post.AuthorNickname)
		assert.Equal(t, 2, post.CommentCount)
		assert.Nil(t, post.UpdatedAt)
	})

	t.Run("Пост не найден", func(t *testing.T) {
		mock.ExpectQuery(`FROM posts p`).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		post, err := repo.GetByID(ctx, 99)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, post)
	})
}

func TestPostRepository_Update(t *testing.T) {
	sqlxDB, mock, closeDB := newMockDB(t)
	defer closeDB()

	repo := NewPostRepository(sqlxDB)
	ctx := context.Background()

	t.Run("Автор обновляет свой пост", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE posts`).
			WithArgs("Новый заголовок", "Новый текст", 1, 3).
			WillReturnRows(sqlmock.NewRows([]string{"to_char"}).AddRow("02.01.2025, 15:30"))

		updatedAt, err := repo.Update(ctx, 1, 3, "Новый заголовок", "Новый текст")

		require.NoError(t, err)
		assert.Equal(t, "02.01.2025, 15:30", updatedAt)
	})

	t.Run("Чужой или несуществующий пост неразличимы", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE posts`).
			WithArgs("Заголовок", "Текст", 1, 5).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(ctx, 1, 5, "Заголовок", "Текст")

		assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
	})
}

func TestPostRepository_Delete(t *testing.T) {
	sqlxDB, mock, closeDB := newMockDB(t)
	defer closeDB()

	repo := NewPostRepository(sqlxDB)
	ctx := context.Background()

	t.Run("Автор удаляет свой пост", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM posts WHERE id = \$1 AND author_id = \$2`).
			WithArgs(7, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, 7, 3)

		assert.NoError(t, err)
	})

	t.Run("Повторное удаление - ноль строк", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM posts WHERE id = \$1 AND author_id = \$2`).
			WithArgs(7, 3).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 7, 3)

		assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
	})
}

func TestPostRepository_ToggleOption(t *testing.T) {
	sqlxDB, mock, closeDB := newMockDB(t)
	defer closeDB()

	repo := NewPostRepository(sqlxDB)
	ctx := context.Background()

	t.Run("Переключение is_pinned", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT is_pinned FROM posts`).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"is_pinned"}).AddRow(false))
		mock.ExpectExec(`UPDATE posts SET is_pinned = \$1 WHERE id = \$2`).
			WithArgs(true, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		newValue, err := repo.ToggleOption(ctx, 5, "is_pinned")

		require.NoError(t, err)
		assert.True(t, newValue)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пост не найден", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT is_ad FROM posts`).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.ToggleOption(ctx, 99, "is_ad")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Колонка не из списка разрешенных", func(t *testing.T) {
		_, err := repo.ToggleOption(ctx, 5, "author_id")

		assert.Error(t, err)
	})
}

func TestOptionColumn(t *testing.T) {
	for _, option := range []string{"is_pinned", "is_ad"} {
		column, ok := OptionColumn(option)
		assert.True(t, ok)
		assert.Equal(t, option, column)
	}

	_, ok := OptionColumn("comment_count")
	assert.False(t, ok)
}
