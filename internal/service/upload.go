// upload.go — оркестратор загрузки новой версии файла.
// Порядок шагов: версия → содержимое на диск → запись метаданных.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/docvault/internal/domain/model"
	"github.com/bigkaa/docvault/internal/repository"
	"github.com/bigkaa/docvault/internal/storage/blobstore"
)

// maxNameLength — максимальная длина original_name в символах.
const maxNameLength = 255

// Prometheus-метрики загрузки.
var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dv_uploads_total",
		Help: "Общее количество загрузок файлов (по статусу).",
	}, []string{"status"})

	uploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dv_upload_bytes_total",
		Help: "Общее количество сохранённых байт.",
	})

	versionConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dv_version_conflicts_total",
		Help: "Количество конфликтов (original_name, version) при создании записи.",
	})
)

// UploadParams — параметры загрузки файла.
type UploadParams struct {
	// Reader — поток содержимого
	Reader io.Reader `json:"-"`
	// OriginalName — имя файла от клиента
	OriginalName string `json:"original_name"`
	// UploadedBy — идентификатор загрузившего (0 → model.DefaultUploader)
	UploadedBy int `json:"uploaded_by"`
}

// Validate проверяет параметры загрузки.
func (p *UploadParams) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.OriginalName,
			validation.Required.Error("имя файла обязательно"),
			validation.Length(1, maxNameLength),
		),
		validation.Field(&p.UploadedBy, validation.Min(0)),
	)
}

// UploadService — оркестратор загрузки версий.
//
// Загрузки одного имени внутри процесса сериализуются блокировкой на имя.
// Между процессами версию защищает UNIQUE(original_name, version):
// при конфликте версия вычисляется заново, не более maxAttempts раз.
type UploadService struct {
	repo        repository.FileRepository
	resolver    *VersionResolver
	store       *blobstore.Store
	locks       *keyedMutex
	maxAttempts int
	logger      *slog.Logger
}

// NewUploadService создаёт оркестратор загрузки.
// maxAttempts — число попыток при конфликте версии (минимум 1).
func NewUploadService(
	repo repository.FileRepository,
	resolver *VersionResolver,
	store *blobstore.Store,
	maxAttempts int,
	logger *slog.Logger,
) *UploadService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &UploadService{
		repo:        repo,
		resolver:    resolver,
		store:       store,
		locks:       newKeyedMutex(),
		maxAttempts: maxAttempts,
		logger:      logger.With(slog.String("component", "upload_service")),
	}
}

// Upload сохраняет новую версию файла и возвращает созданную запись.
//
// Поток:
//  1. Валидация имени
//  2. Блокировка имени
//  3. NextVersion
//  4. Сохранение содержимого (при ошибке запись не создаётся)
//  5. Create; при ErrConflict — повтор с шага 3
//
// Если Create завершился иной ошибкой, содержимое остаётся на диске.
func (s *UploadService) Upload(ctx context.Context, params UploadParams) (*model.FileRecord, error) {
	if err := params.Validate(); err != nil {
		uploadsTotal.WithLabelValues("validation_error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if params.Reader == nil {
		uploadsTotal.WithLabelValues("validation_error").Inc()
		return nil, fmt.Errorf("%w: содержимое файла отсутствует", ErrValidation)
	}

	unlock, err := s.locks.Lock(ctx, params.OriginalName)
	if err != nil {
		return nil, fmt.Errorf("ожидание блокировки %q: %w", params.OriginalName, err)
	}
	defer unlock()

	// previous — содержимое, сохранённое на предыдущей попытке;
	// при повторе копируется под новую версию, затем удаляется.
	var previous *blobstore.SaveResult

	for attempt := 1; ; attempt++ {
		version, err := s.resolver.NextVersion(ctx, params.OriginalName)
		if err != nil {
			s.discard(previous)
			uploadsTotal.WithLabelValues("repository_error").Inc()
			return nil, err
		}

		saved, err := s.saveContent(params, version, previous)
		previous = nil
		if err != nil {
			s.logger.Error("Ошибка сохранения содержимого",
				slog.String("original_name", params.OriginalName),
				slog.Int("version", version),
				slog.String("error", err.Error()),
			)
			uploadsTotal.WithLabelValues("storage_error").Inc()
			return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
		}

		record, err := s.repo.Create(ctx, &model.FileRecord{
			OriginalName: params.OriginalName,
			StoredName:   saved.StoredName,
			Version:      version,
			StoragePath:  saved.Path,
			UploadedBy:   params.UploadedBy,
			SizeBytes:    saved.Size,
		})
		if err == nil {
			uploadsTotal.WithLabelValues("success").Inc()
			uploadBytesTotal.Add(float64(saved.Size))
			s.logger.Info("Файл загружен",
				slog.Int64("id", record.ID),
				slog.String("original_name", record.OriginalName),
				slog.Int("version", record.Version),
				slog.String("stored_name", record.StoredName),
				slog.Int64("size_bytes", record.SizeBytes),
			)
			return record, nil
		}

		if errors.Is(err, repository.ErrConflict) {
			versionConflictsTotal.Inc()
			if attempt < s.maxAttempts {
				s.logger.Warn("Конфликт версии, повторное вычисление",
					slog.String("original_name", params.OriginalName),
					slog.Int("version", version),
					slog.Int("attempt", attempt),
				)
				previous = saved
				continue
			}
			// Запись не будет создана — своё содержимое удаляем
			s.discard(saved)
			uploadsTotal.WithLabelValues("conflict").Inc()
			return nil, fmt.Errorf("%w: версия для %q не назначена после %d попыток: %v",
				ErrRepository, params.OriginalName, attempt, err)
		}

		s.logger.Error("Ошибка создания записи, содержимое осталось на диске",
			slog.String("original_name", params.OriginalName),
			slog.String("path", saved.Path),
			slog.String("error", err.Error()),
		)
		uploadsTotal.WithLabelValues("repository_error").Inc()
		return nil, fmt.Errorf("%w: создание записи: %v", ErrRepository, err)
	}
}

// saveContent сохраняет содержимое под версию version.
// На повторной попытке источником служит ранее сохранённый файл.
func (s *UploadService) saveContent(params UploadParams, version int, previous *blobstore.SaveResult) (*blobstore.SaveResult, error) {
	if previous == nil {
		return s.store.Save(params.OriginalName, version, params.Reader)
	}
	defer s.discard(previous)

	f, err := s.store.Open(previous.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return s.store.Save(params.OriginalName, version, f)
}

// discard удаляет содержимое, на которое не ссылается ни одна запись.
func (s *UploadService) discard(saved *blobstore.SaveResult) {
	if saved == nil {
		return
	}
	if err := s.store.Delete(saved.Path); err != nil {
		s.logger.Warn("Не удалось удалить содержимое",
			slog.String("path", saved.Path),
			slog.String("error", err.Error()),
		)
	}
}
