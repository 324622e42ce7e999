// files.go — чтение записей файлов: список последних версий,
// получение по ID и открытие содержимого для скачивания.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/docvault/internal/domain/model"
	"github.com/bigkaa/docvault/internal/repository"
	"github.com/bigkaa/docvault/internal/storage/blobstore"
)

var downloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dv_downloads_total",
	Help: "Общее количество запросов на скачивание (по статусу).",
}, []string{"status"})

// FileService — операции чтения над записями и содержимым.
type FileService struct {
	repo   repository.FileRepository
	store  *blobstore.Store
	cache  *CacheService
	logger *slog.Logger
}

// NewFileService создаёт FileService. cache может быть nil.
func NewFileService(
	repo repository.FileRepository,
	store *blobstore.Store,
	cache *CacheService,
	logger *slog.Logger,
) *FileService {
	return &FileService{
		repo:   repo,
		store:  store,
		cache:  cache,
		logger: logger.With(slog.String("component", "file_service")),
	}
}

// ListLatest возвращает по одной последней версии на имя, новые первыми.
func (s *FileService) ListLatest(ctx context.Context) ([]*model.FileRecord, error) {
	records, err := s.repo.ListLatestPerName(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: список файлов: %v", ErrRepository, err)
	}
	return records, nil
}

// Get возвращает запись по ID (сначала из кэша).
func (s *FileService) Get(ctx context.Context, id int64) (*model.FileRecord, error) {
	return getRecord(ctx, s.repo, s.cache, id)
}

// OpenContent возвращает запись и открытый файл содержимого.
// Вызывающий код закрывает файл.
//
// ErrNotFound — записи нет; ErrContentNotFound — запись есть,
// а файла на диске нет (расхождение метаданных и хранилища).
func (s *FileService) OpenContent(ctx context.Context, id int64) (*model.FileRecord, *os.File, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		downloadsTotal.WithLabelValues(downloadStatus(err)).Inc()
		return nil, nil, err
	}

	f, err := s.store.Open(record.StoragePath)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			s.logger.Warn("Содержимое отсутствует на диске",
				slog.Int64("id", record.ID),
				slog.String("path", record.StoragePath),
			)
			downloadsTotal.WithLabelValues("content_not_found").Inc()
			return nil, nil, fmt.Errorf("%w: файл %d (%s)", ErrContentNotFound, record.ID, record.StoredName)
		}
		downloadsTotal.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("%w: открытие содержимого: %v", ErrStorageRead, err)
	}

	downloadsTotal.WithLabelValues("success").Inc()
	return record, f, nil
}

func downloadStatus(err error) string {
	if errors.Is(err, ErrNotFound) {
		return "not_found"
	}
	return "error"
}

// getRecord читает запись через кэш: кэш → БД → кэш.
// Поля анализа в результате могут быть устаревшими; вызывающий код
// использует только неизменяемые поля версии.
func getRecord(ctx context.Context, repo repository.FileRepository, cache *CacheService, id int64) (*model.FileRecord, error) {
	if record, ok := cache.Get(id); ok {
		return record, nil
	}

	record, err := loadRecord(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	cache.Set(record)
	return record, nil
}

// loadRecord читает запись из БД.
func loadRecord(ctx context.Context, repo repository.FileRepository, id int64) (*model.FileRecord, error) {
	record, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: получение файла %d: %v", ErrRepository, id, err)
	}
	return record, nil
}
