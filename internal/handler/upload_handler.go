package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
)

// Разрешенные форматы картинок.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// formImage достает картинку из multipart-формы и проверяет тип и размер.
// При ошибке сам пишет ответ и возвращает ok=false.
func (h *Handlers) formImage(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Некорректный запрос", http.StatusBadRequest)
		}
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return nil, nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		file.Close()
		WriteError(w, "Неправильный формат файла", http.StatusBadRequest)
		return nil, nil, false
	}

	if header.Filename == "" {
		file.Close()
		WriteError(w, "Неправильный формат файла", http.StatusBadRequest)
		return nil, nil, false
	}

	return file, header, true
}

// UploadFile - загрузка вложения для поста. Файл уходит в хранилище,
// клиент получает готовый URL.
func (h *Handlers) UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formImage(w, r)
	if !ok {
		return
	}
	defer file.Close()

	fileURL, err := h.UserService.UploadAttachment(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	WriteJSON(w, map[string]string{"url": fileURL}, http.StatusOK)
}
