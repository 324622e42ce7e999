// files.go — обработчики /files/*: загрузка, список последних версий,
// анализ, результат анализа и скачивание.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/docvault/internal/api/errors"
	"github.com/bigkaa/docvault/internal/api/generated"
	"github.com/bigkaa/docvault/internal/domain/model"
	"github.com/bigkaa/docvault/internal/service"
)

// multipartOverhead — запас на заголовки multipart сверх размера файла.
const multipartOverhead = 1 << 20

// multipartMemory — часть формы, хранимая в памяти; остальное уходит во временные файлы.
const multipartMemory = 32 << 20

// Статусы анализа в ответах.
const (
	statusAnalysisSaved   = "Analysis complete and result saved"
	statusAnalysisReady   = "Analysis result available"
	statusAnalysisMissing = "Analysis not performed yet or result is empty"
)

func newAnalysisResponse(rec *model.FileRecord, status string) generated.AnalysisResponse {
	resp := generated.AnalysisResponse{
		FileId:       rec.ID,
		OriginalName: rec.OriginalName,
		Version:      rec.Version,
		Status:       status,
	}
	if rec.HasAnalysis() {
		resp.AiComment = rec.AnalysisResult
		resp.AnalysisUpdatedAt = rec.AnalysisUpdatedAt
	}
	return resp
}

// UploadFile — POST /files/upload (multipart, поле "file").
func (h *APIHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apierrors.FileTooLarge(w, fmt.Sprintf("Размер файла превышает максимум %d байт", h.maxUploadSize))
			return
		}
		apierrors.ValidationError(w, "Ожидается multipart/form-data с полем file")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck // очистка временных файлов формы

	file, header, err := r.FormFile("file")
	if err != nil {
		// Часть без имени файла multipart считает обычным полем
		apierrors.ValidationError(w, "Файл не передан или имя файла пустое")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		apierrors.FileTooLarge(w, fmt.Sprintf("Размер файла %d байт превышает максимум %d байт", header.Size, h.maxUploadSize))
		return
	}

	rec, err := h.uploads.Upload(r.Context(), service.UploadParams{
		Reader:       file,
		OriginalName: header.Filename,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка загрузки файла",
			slog.String("original_name", header.Filename))
		return
	}

	writeJSON(w, http.StatusCreated, generated.UploadResponse{
		Id:           rec.ID,
		OriginalName: rec.OriginalName,
		Version:      rec.Version,
		SizeBytes:    rec.SizeBytes,
		Message:      fmt.Sprintf("File uploaded and saved as version %d", rec.Version),
	})
}

// ListFiles — GET /files/. По одной последней версии на имя, новые первыми.
func (h *APIHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	records, err := h.files.ListLatest(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка получения списка файлов")
		return
	}

	items := make([]generated.FileListItem, 0, len(records))
	for _, rec := range records {
		items = append(items, generated.FileListItem{
			Id:         rec.ID,
			FileName:   rec.OriginalName,
			Version:    rec.Version,
			UploadDate: rec.UploadedAt,
			SizeBytes:  rec.SizeBytes,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// AnalyzeFile — POST /files/{id}/analyze.
func (h *APIHandler) AnalyzeFile(w http.ResponseWriter, r *http.Request, id generated.FileId) {
	if !validFileID(w, id) {
		return
	}

	rec, err := h.analysis.Analyze(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка анализа файла", slog.Int64("id", id))
		return
	}
	writeJSON(w, http.StatusOK, newAnalysisResponse(rec, statusAnalysisSaved))
}

// GetAnalysis — GET /files/{id}/analysis. Анализ не запускает.
func (h *APIHandler) GetAnalysis(w http.ResponseWriter, r *http.Request, id generated.FileId) {
	if !validFileID(w, id) {
		return
	}

	rec, err := h.analysis.GetAnalysis(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка получения анализа", slog.Int64("id", id))
		return
	}

	status := statusAnalysisReady
	if !rec.HasAnalysis() {
		status = statusAnalysisMissing
	}
	writeJSON(w, http.StatusOK, newAnalysisResponse(rec, status))
}

// DownloadFile — GET /files/{id}/download. Поддерживает Range через http.ServeContent.
func (h *APIHandler) DownloadFile(w http.ResponseWriter, r *http.Request, id generated.FileId) {
	if !validFileID(w, id) {
		return
	}

	rec, f, err := h.files.OpenContent(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Ошибка скачивания файла", slog.Int64("id", id))
		return
	}
	defer f.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": rec.OriginalName})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", disposition)
	http.ServeContent(w, r, rec.OriginalName, rec.UploadedAt, f)
}

// validFileID проверяет диапазон {id}: формат уже разобран обёрткой
// oapi-codegen, minimum из контракта она не применяет.
func validFileID(w http.ResponseWriter, id generated.FileId) bool {
	if id <= 0 {
		apierrors.ValidationError(w, fmt.Sprintf("Некорректный ID файла: %d", id))
		return false
	}
	return true
}

// ParamErrorHandler — ErrorHandlerFunc для сгенерированного роутера:
// ошибки разбора параметров пути отдаются как VALIDATION_ERROR.
func ParamErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	var formatErr *generated.InvalidParamFormatError
	if errors.As(err, &formatErr) {
		apierrors.ValidationError(w, fmt.Sprintf("Некорректный ID файла: %q", chi.URLParam(r, formatErr.ParamName)))
		return
	}
	apierrors.ValidationError(w, err.Error())
}
