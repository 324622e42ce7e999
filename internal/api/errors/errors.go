// Пакет errors — ответы с ошибками в едином формате docvault.
// Формат: {"error": {"code": "...", "message": "..."}}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors //nolint:revive // конфликт имени со stdlib, импортируется как apierrors

import (
	"encoding/json"
	"net/http"

	"github.com/bigkaa/docvault/internal/api/generated"
)

// Коды ошибок, определённые в OpenAPI контракте.
const (
	CodeValidationError   = string(generated.VALIDATIONERROR)
	CodeNotFound          = string(generated.NOTFOUND)
	CodeContentNotFound   = string(generated.CONTENTNOTFOUND)
	CodeFileTooLarge      = string(generated.FILETOOLARGE)
	CodeStorageWriteError = string(generated.STORAGEWRITEERROR)
	CodeRepositoryError   = string(generated.REPOSITORYERROR)
	CodeInternalError     = string(generated.INTERNALERROR)
)

// WriteError записывает ответ ошибки в стандартном формате.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(generated.ErrorResponse{
		Error: generated.ErrorDetail{
			Code:    generated.ErrorDetailCode(code),
			Message: message,
		},
	})
}

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message)
}

// NotFound — 404 запись не найдена.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// ContentNotFound — 404 запись есть, содержимого на диске нет.
func ContentNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeContentNotFound, message)
}

// FileTooLarge — 413 файл превышает лимит.
func FileTooLarge(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusRequestEntityTooLarge, CodeFileTooLarge, message)
}

// StorageWriteError — 500 ошибка записи в хранилище.
func StorageWriteError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeStorageWriteError, message)
}

// RepositoryError — 500 ошибка базы метаданных.
func RepositoryError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeRepositoryError, message)
}

// InternalError — 500 внутренняя ошибка.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}
