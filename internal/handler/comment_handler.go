package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"gghubblog/internal/repository"
)

const minCommentLength = 10

type AddCommentRequest struct {
	PostID   *int    `json:"post_id"`
	UserID   *int    `json:"user_id"`
	Content  *string `json:"content"`
	ParentID *int    `json:"parent_id"`
}

// GetComments отдает комментарии поста вместе с никнеймами авторов.
// Пустой список клиенты ждут как 404 с отдельным сообщением, не как
// пустой массив.
func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	comments, err := h.CommentService.GetComments(r.Context(), postID)
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	if len(comments) == 0 {
		WriteJSON(w, map[string]interface{}{
			"message":  "Комментарии не найдены",
			"comments": nil,
		}, http.StatusNotFound)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"message":  "Комментарии успешно получены",
		"comments": comments,
	}, http.StatusOK)
}

// AddComment создает комментарий и увеличивает счетчик комментариев поста.
// Ответ для ответа на комментарий и для корневого комментария отличается
// ключом: commentsReplies против comment.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	currentUserID, _ := r.Context().Value("userID").(int)

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	if req.PostID == nil || req.UserID == nil || req.Content == nil {
		WriteError(w, "Отсутствуют обязательные поля", http.StatusBadRequest)
		return
	}

	if utf8.RuneCountInString(*req.Content) < minCommentLength {
		WriteError(w, "Комментарий должен быть не менее 10 символов", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.AddComment(r.Context(), *req.PostID, currentUserID, *req.Content, req.ParentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Пост не найден", http.StatusNotFound)
			return
		}
		WriteInternalError(w, err)
		return
	}

	key := "comment"
	if comment.ParentID != nil {
		key = "commentsReplies"
	}

	WriteJSON(w, map[string]interface{}{
		"message": "Комментарий успешно добавлен",
		key:       comment,
	}, http.StatusCreated)
}

// DeleteComment удаляет комментарий и уменьшает счетчик поста. Чужой или
// несуществующий комментарий дают одинаковый 403.
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	currentUserID, _ := r.Context().Value("userID").(int)

	commentID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	if err := h.CommentService.DeleteComment(r.Context(), commentID, currentUserID); err != nil {
		if errors.Is(err, repository.ErrForbidden) {
			WriteError(w, "У вас нет прав на удаление этого комментария", http.StatusForbidden)
			return
		}
		WriteInternalError(w, err)
		return
	}

	WriteJSON(w, MessageResponse{Message: "Комментарий успешно удален"}, http.StatusOK)
}
