// handler.go — основной обработчик API docvault.
// Объединяет health и бизнес-обработчики, делегируя работу сервисному слою.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	apierrors "github.com/bigkaa/docvault/internal/api/errors"
	"github.com/bigkaa/docvault/internal/api/generated"
	"github.com/bigkaa/docvault/internal/domain/model"
	"github.com/bigkaa/docvault/internal/service"
)

// Uploader — загрузка новой версии файла.
type Uploader interface {
	Upload(ctx context.Context, params service.UploadParams) (*model.FileRecord, error)
}

// FileReader — чтение записей и содержимого.
type FileReader interface {
	ListLatest(ctx context.Context) ([]*model.FileRecord, error)
	OpenContent(ctx context.Context, id int64) (*model.FileRecord, *os.File, error)
}

// Analyzer — запуск и чтение анализа.
type Analyzer interface {
	Analyze(ctx context.Context, id int64) (*model.FileRecord, error)
	GetAnalysis(ctx context.Context, id int64) (*model.FileRecord, error)
}

// APIHandler — основной обработчик API docvault.
type APIHandler struct {
	health        *HealthHandler
	uploads       Uploader
	files         FileReader
	analysis      Analyzer
	maxUploadSize int64
	logger        *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
// maxUploadSize — лимит размера загружаемого файла в байтах.
func NewAPIHandler(
	health *HealthHandler,
	uploads Uploader,
	files FileReader,
	analysis Analyzer,
	maxUploadSize int64,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:        health,
		uploads:       uploads,
		files:         files,
		analysis:      analysis,
		maxUploadSize: maxUploadSize,
		logger:        logger.With(slog.String("component", "api_handler")),
	}
}

// --- Health endpoints (делегируются в HealthHandler) ---

// HealthLive — liveness-проверка.
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness-проверка.
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// Root — приветственное сообщение.
func (h *APIHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Document Service.",
	})
}

// Проверка реализации интерфейса на этапе компиляции.
var _ generated.ServerInterface = (*APIHandler)(nil)

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError отображает ошибку сервисного слоя в HTTP-ответ.
// Каждая ошибка попадает ровно в один код; неизвестные — INTERNAL_ERROR.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string, attrs ...slog.Attr) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, err.Error())
		return
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, err.Error())
		return
	case errors.Is(err, service.ErrContentNotFound):
		apierrors.ContentNotFound(w, "Содержимое файла не найдено на диске")
		return
	}

	h.logger.LogAttrs(r.Context(), slog.LevelError, op,
		append(attrs, slog.String("error", err.Error()))...)

	switch {
	case errors.Is(err, service.ErrStorageWrite):
		apierrors.StorageWriteError(w, "Не удалось сохранить файл на диск")
	case errors.Is(err, service.ErrStorageRead):
		apierrors.InternalError(w, "Не удалось прочитать файл с диска")
	case errors.Is(err, service.ErrRepository):
		apierrors.RepositoryError(w, "Ошибка базы метаданных")
	default:
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
	}
}
