package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gghubblog/internal/repository"
)

// GetProfile - публичный маршрут. Токен не обязателен: владелец видит
// профиль вместе с email, все остальные - без него. Чужой или
// отсутствующий токен не ошибка.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	targetUserID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	currentUserID, _ := r.Context().Value("userID").(int)

	profile, isOwner, err := h.UserService.GetProfile(r.Context(), targetUserID, currentUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
			return
		}
		WriteInternalError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"isError": false,
		"isOwner": isOwner,
		"user":    profile,
	}, http.StatusOK)
}

// UpdateProfile обновляет только присланные из {status, nickname, bio} поля.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	targetUserID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	currentUserID, _ := r.Context().Value("userID").(int)
	if currentUserID != targetUserID {
		WriteError(w, "У вас нет прав на изменение этих данных", http.StatusBadRequest)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
		WriteError(w, "Некорректные данные", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	for _, key := range []string{"status", "nickname", "bio"} {
		if raw, ok := payload[key]; ok {
			value, ok := raw.(string)
			if !ok {
				WriteError(w, "Некорректные данные", http.StatusBadRequest)
				return
			}
			fields[key] = value
		}
	}

	if err := h.UserService.UpdateProfile(r.Context(), currentUserID, fields); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoUpdatableFields):
			WriteError(w, "Нет данных для обновления", http.StatusBadRequest)
		case errors.Is(err, repository.ErrNotFound):
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		default:
			WriteInternalError(w, err)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Данные успешно сохранены"}, http.StatusCreated)
}

// UploadBanner сохраняет картинку в хранилище и обновляет banner_url
// пользователя. Менять баннер можно только себе.
func (h *Handlers) UploadBanner(w http.ResponseWriter, r *http.Request) {
	targetUserID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	currentUserID, _ := r.Context().Value("userID").(int)
	if currentUserID != targetUserID {
		WriteError(w, "У вас нет прав на изменение этих данных", http.StatusBadRequest)
		return
	}

	file, header, ok := h.formImage(w, r)
	if !ok {
		return
	}
	defer file.Close()

	bannerURL, err := h.UserService.UploadBanner(r.Context(), currentUserID, header.Filename, file, header.Size)
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"message":   "Баннер успешно изменен",
		"bannerUrl": bannerURL,
	}, http.StatusOK)
}
