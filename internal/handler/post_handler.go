package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"gghubblog/internal/repository"
)

const (
	minTitleCreate   = 10
	minTitleUpdate   = 3
	maxTitleLength   = 150
	minContentLength = 50
	maxContentLength = 10000
)

const postsCacheKey = "posts:list"

type CreatePostRequest struct {
	AuthorID *int    `json:"author_id"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// validatePostBounds проверяет границы длины. Лимиты заголовка различаются
// для создания и обновления, текст везде [50, 10000].
func validatePostBounds(title, content string, minTitle int) (string, bool) {
	titleLen := utf8.RuneCountInString(title)
	if titleLen < minTitle || titleLen > maxTitleLength {
		return fmt.Sprintf("Длина заголовка должна быть от %d до %d символов", minTitle, maxTitleLength), false
	}

	contentLen := utf8.RuneCountInString(content)
	if contentLen < minContentLength || contentLen > maxContentLength {
		return fmt.Sprintf("Длина текста должна быть от %d до %d символов", minContentLength, maxContentLength), false
	}

	return "", true
}

// GetPosts отдает все посты с никнеймами авторов. Готовый JSON на минуту
// оседает в кеше; ошибки кеша не роняют запрос, а только логируются.
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	if h.Cache != nil {
		cached, err := h.Cache.Get(r.Context(), postsCacheKey)
		if err != nil {
			log.Printf("кеш постов недоступен: %v", err)
		}
		if cached != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
	}

	posts, err := h.PostService.GetPosts(r.Context())
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	body, err := json.Marshal(map[string]interface{}{"posts": posts})
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Set(r.Context(), postsCacheKey, body, h.Cfg.Redis.PostsTTL); err != nil {
			log.Printf("не удалось записать посты в кеш: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Пост не найден", http.StatusNotFound)
			return
		}
		WriteInternalError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"isError": false,
		"post":    post,
	}, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	currentUserID, _ := r.Context().Value("userID").(int)

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	var missingFields []string
	if req.AuthorID == nil {
		missingFields = append(missingFields, "id автора")
	}
	if req.Title == nil {
		missingFields = append(missingFields, "заголовок")
	}
	if req.Content == nil {
		missingFields = append(missingFields, "текст")
	}

	if len(missingFields) > 0 {
		WriteError(w, "Отсутствуют обязательные поля нового поста: "+strings.Join(missingFields, ", "),
			http.StatusBadRequest)
		return
	}

	// author_id в теле обязан совпадать с identity из токена
	if *req.AuthorID != currentUserID {
		WriteError(w, "Нет прав для добавления этого поста", http.StatusBadRequest)
		return
	}

	if message, ok := validatePostBounds(*req.Title, *req.Content, minTitleCreate); !ok {
		WriteError(w, message, http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), *req.Title, *req.Content, currentUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
			return
		}
		WriteInternalError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"message": "Пост успешно добавлен",
		"post":    post,
	}, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	currentUserID, _ := r.Context().Value("userID").(int)

	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	if req.Title == nil || req.Content == nil {
		WriteError(w, "Заголовок или текст поста обязательны", http.StatusBadRequest)
		return
	}

	if message, ok := validatePostBounds(*req.Title, *req.Content, minTitleUpdate); !ok {
		WriteError(w, message, http.StatusBadRequest)
		return
	}

	updatedAt, err := h.PostService.UpdatePost(r.Context(), postID, currentUserID, *req.Title, *req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFoundOrForbidden) {
			WriteError(w, "Пост не найден или у вас нет прав на его изменение", http.StatusNotFound)
			return
		}
		WriteInternalError(w, err)
		return
	}

	WriteJSON(w, map[string]string{
		"message":    "Пост успешно изменен",
		"updated_at": updatedAt,
	}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	currentUserID, _ := r.Context().Value("userID").(int)

	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID, currentUserID); err != nil {
		if errors.Is(err, repository.ErrNotFoundOrForbidden) {
			WriteError(w, "Пост не найден или у вас нет прав на его удаление", http.StatusNotFound)
			return
		}
		WriteInternalError(w, err)
		return
	}

	WriteJSON(w, MessageResponse{Message: "Пост был удален :("}, http.StatusOK)
}

// ToggleOption переключает is_pinned/is_ad поста. Только для администратора.
func (h *Handlers) ToggleOption(w http.ResponseWriter, r *http.Request) {
	currentUserID, _ := r.Context().Value("userID").(int)

	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	var req struct {
		Option string `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Некорректный запрос: ожидается JSON", http.StatusBadRequest)
		return
	}

	if _, ok := repository.OptionColumn(req.Option); !ok {
		WriteError(w, "Недопустимая опция", http.StatusBadRequest)
		return
	}

	newValue, err := h.PostService.ToggleOption(r.Context(), currentUserID, postID, req.Option)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrForbidden):
			WriteError(w, "У вас нет прав на изменение этих настроек", http.StatusForbidden)
		case errors.Is(err, repository.ErrNotFound):
			WriteError(w, "Пост не найден", http.StatusNotFound)
		case errors.Is(err, repository.ErrInvalidOption):
			WriteError(w, "Недопустимая опция", http.StatusBadRequest)
		default:
			WriteInternalError(w, err)
		}
		return
	}

	WriteJSON(w, map[string]interface{}{
		"message":   "Успешно изменено",
		"option":    req.Option,
		"new_value": newValue,
		"post_id":   postID,
	}, http.StatusOK)
}
