package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"gghubblog/internal/repository"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Nickname string `json:"nickname" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// validateCredentials проверяет email и пароль в фиксированном порядке:
// пустое тело, затем отсутствующие поля, затем формат email.
func validateCredentials(email, password string) (string, bool) {
	if email == "" || password == "" {
		return "Email и пароль обязательны", false
	}

	if !emailPattern.MatchString(email) {
		return "Некорректный email", false
	}

	return "", true
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	if message, ok := validateCredentials(req.Email, req.Password); !ok {
		WriteError(w, message, http.StatusBadRequest)
		return
	}

	if req.Nickname == "" {
		WriteError(w, "Никнейм обязателен", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	userID, token, _, err := h.AuthService.Register(r.Context(), req.Email, req.Nickname, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			WriteError(w, "Пользователь с таким email уже существует", http.StatusConflict)
			return
		}
		WriteInternalError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"isError": false,
		"message": "Пользователь успешно зарегистрирован",
		"user_id": userID,
		"token":   token,
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		return
	}

	if message, ok := validateCredentials(req.Email, req.Password); !ok {
		WriteError(w, message, http.StatusBadRequest)
		return
	}

	user, token, exp, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			WriteError(w, "Неверные данные", http.StatusUnauthorized)
			return
		}
		WriteInternalError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"isError": false,
		"token":   token,
		"exp":     exp,
		"user_id": user.ID,
		"message": "Пользователь успешно авторизован",
	}, http.StatusOK)
}

// AuthStatus отдает identity из проверенного токена.
func (h *Handlers) AuthStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"isLoggedIn": true,
		"user":       map[string]int{"id": userID},
	}, http.StatusOK)
}
