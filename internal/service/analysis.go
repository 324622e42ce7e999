// analysis.go — анализ версии файла: метаданные → аннотатор → сохранение текста.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/docvault/internal/domain/model"
	"github.com/bigkaa/docvault/internal/repository"
)

var analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dv_analyses_total",
	Help: "Общее количество запусков анализа (по статусу).",
}, []string{"status"})

// Annotator строит описательный текст по метаданным версии.
// Реализация — чистая функция: без побочных эффектов и ошибок.
type Annotator interface {
	Annotate(meta model.AnalysisMetadata) string
}

// Пороги классификации размера, байт.
const (
	smallFileLimit  = 100_000
	mediumFileLimit = 1_000_000
)

// MockAnnotator — заглушка анализа: текст зависит от размера и номера версии.
type MockAnnotator struct{}

// Annotate реализует Annotator.
func (MockAnnotator) Annotate(meta model.AnalysisMetadata) string {
	var sizeClass string
	switch {
	case meta.SizeBytes < smallFileLimit:
		sizeClass = "очень небольшой"
	case meta.SizeBytes < mediumFileLimit:
		sizeClass = "относительно небольшой"
	default:
		sizeClass = "довольно крупный"
	}

	comment := "новое изменение внесено. Необходимо проверить, что именно было скорректировано."
	if meta.Version == 1 {
		comment = "это первая версия документа, требуется первичная оценка содержания."
	}

	return fmt.Sprintf("Файл '%s' (v%d) размером %s. AI-комментарий: %s",
		meta.OriginalName, meta.Version, sizeClass, comment)
}

// AnalysisService — запуск анализа и чтение его результата.
type AnalysisService struct {
	repo      repository.FileRepository
	cache     *CacheService
	annotator Annotator
	now       func() time.Time
	logger    *slog.Logger
}

// NewAnalysisService создаёт AnalysisService. cache может быть nil.
func NewAnalysisService(
	repo repository.FileRepository,
	cache *CacheService,
	annotator Annotator,
	logger *slog.Logger,
) *AnalysisService {
	return &AnalysisService{
		repo:      repo,
		cache:     cache,
		annotator: annotator,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "analysis_service")),
	}
}

// Analyze строит текст анализа и сохраняет его вместе с текущим временем.
// Повторный вызов перезаписывает предыдущий результат.
func (s *AnalysisService) Analyze(ctx context.Context, id int64) (*model.FileRecord, error) {
	// Аннотатору нужны только неизменяемые поля, кэш для них годится
	record, err := getRecord(ctx, s.repo, s.cache, id)
	if err != nil {
		analysesTotal.WithLabelValues(analysisStatus(err)).Inc()
		return nil, err
	}

	text := s.annotator.Annotate(record.Metadata())
	at := s.now().UTC()

	updated, err := s.repo.Update(ctx, id, model.FileUpdate{
		AnalysisResult:    &text,
		AnalysisUpdatedAt: &at,
	})
	if err != nil {
		s.cache.Delete(id)
		if errors.Is(err, repository.ErrNotFound) {
			analysesTotal.WithLabelValues("not_found").Inc()
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		analysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: сохранение анализа %d: %v", ErrRepository, id, err)
	}

	// Порядок завершения параллельных Analyze не совпадает с порядком
	// коммитов, поэтому запись в кэше только инвалидируется
	s.cache.Delete(id)
	analysesTotal.WithLabelValues("success").Inc()
	s.logger.Info("Анализ сохранён",
		slog.Int64("id", updated.ID),
		slog.String("original_name", updated.OriginalName),
		slog.Int("version", updated.Version),
	)
	return updated, nil
}

// GetAnalysis возвращает запись с текущим результатом анализа.
// Поля анализа изменяемы и читаются из БД в обход кэша: результат
// мог записать другой процесс. Анализ не запускается; отсутствие
// результата — не ошибка.
func (s *AnalysisService) GetAnalysis(ctx context.Context, id int64) (*model.FileRecord, error) {
	return loadRecord(ctx, s.repo, id)
}

func analysisStatus(err error) string {
	if errors.Is(err, ErrNotFound) {
		return "not_found"
	}
	return "error"
}
