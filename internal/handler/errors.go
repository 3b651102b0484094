package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	IsError bool   `json:"isError"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{IsError: true, Message: message})
}

// WriteInternalError логирует подробности на сервере, клиенту уходит
// общий текст без деталей.
func WriteInternalError(w http.ResponseWriter, err error) {
	log.Printf("внутренняя ошибка: %v", err)
	WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
}

// WriteJSON - функция для успешных ответов
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
