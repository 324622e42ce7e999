package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bigkaa/docvault/internal/domain/model"
)

func TestMockAnnotator(t *testing.T) {
	tests := []struct {
		name string
		meta model.AnalysisMetadata
		want string
	}{
		{
			name: "первая версия, маленький файл",
			meta: model.AnalysisMetadata{OriginalName: "a.txt", SizeBytes: 99999, Version: 1},
			want: "Файл 'a.txt' (v1) размером очень небольшой. AI-комментарий: " +
				"это первая версия документа, требуется первичная оценка содержания.",
		},
		{
			name: "граница 100000",
			meta: model.AnalysisMetadata{OriginalName: "a.txt", SizeBytes: 100000, Version: 1},
			want: "Файл 'a.txt' (v1) размером относительно небольшой. AI-комментарий: " +
				"это первая версия документа, требуется первичная оценка содержания.",
		},
		{
			name: "вторая версия, средний файл",
			meta: model.AnalysisMetadata{OriginalName: "report.pdf", SizeBytes: 999999, Version: 2},
			want: "Файл 'report.pdf' (v2) размером относительно небольшой. AI-комментарий: " +
				"новое изменение внесено. Необходимо проверить, что именно было скорректировано.",
		},
		{
			name: "граница 1000000",
			meta: model.AnalysisMetadata{OriginalName: "big.iso", SizeBytes: 1000000, Version: 7},
			want: "Файл 'big.iso' (v7) размером довольно крупный. AI-комментарий: " +
				"новое изменение внесено. Необходимо проверить, что именно было скорректировано.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (MockAnnotator{}).Annotate(tt.meta); got != tt.want {
				t.Errorf("Annotate() =\n%q\nожидается\n%q", got, tt.want)
			}
		})
	}
}

// countingAnnotator возвращает разный текст на каждый вызов.
type countingAnnotator struct{ calls int }

func (a *countingAnnotator) Annotate(meta model.AnalysisMetadata) string {
	a.calls++
	return fmt.Sprintf("анализ #%d для %s", a.calls, meta.OriginalName)
}

func TestAnalysisService_AnalyzeOverwrites(t *testing.T) {
	env := newTestEnv(t)
	annotator := &countingAnnotator{}
	env.analysis.annotator = annotator

	first := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	env.analysis.now = func() time.Time { return first }

	id, _ := upload(t, env, "doc.txt", []byte("x"))
	ctx := context.Background()

	rec, err := env.analysis.Analyze(ctx, id)
	if err != nil {
		t.Fatalf("Analyze() ошибка: %v", err)
	}
	if rec.AnalysisResult == nil || *rec.AnalysisResult != "анализ #1 для doc.txt" {
		t.Fatalf("AnalysisResult = %v", rec.AnalysisResult)
	}
	if rec.AnalysisUpdatedAt == nil || !rec.AnalysisUpdatedAt.Equal(first) {
		t.Errorf("AnalysisUpdatedAt = %v, ожидается %v", rec.AnalysisUpdatedAt, first)
	}

	second := first.Add(time.Hour)
	env.analysis.now = func() time.Time { return second }

	rec, err = env.analysis.Analyze(ctx, id)
	if err != nil {
		t.Fatalf("Analyze() ошибка: %v", err)
	}
	if *rec.AnalysisResult != "анализ #2 для doc.txt" {
		t.Errorf("AnalysisResult = %q, ожидается перезапись", *rec.AnalysisResult)
	}
	if !rec.AnalysisUpdatedAt.Equal(second) {
		t.Errorf("AnalysisUpdatedAt = %v, ожидается %v", rec.AnalysisUpdatedAt, second)
	}

	// Чтение видит последний результат
	got, err := env.analysis.GetAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("GetAnalysis() ошибка: %v", err)
	}
	if *got.AnalysisResult != "анализ #2 для doc.txt" {
		t.Errorf("GetAnalysis() = %q", *got.AnalysisResult)
	}

	// Неизменяемые поля не тронуты
	if got.Version != 1 || got.OriginalName != "doc.txt" {
		t.Errorf("изменены неизменяемые поля: %+v", got)
	}
}

func TestAnalysisService_AnalyzeUsesMetadata(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	upload(t, env, "report.pdf", bytes.Repeat([]byte("a"), 500000))
	id, _ := upload(t, env, "report.pdf", bytes.Repeat([]byte("b"), 2000000))

	rec, err := env.analysis.Analyze(ctx, id)
	if err != nil {
		t.Fatalf("Analyze() ошибка: %v", err)
	}
	want := "Файл 'report.pdf' (v2) размером довольно крупный. AI-комментарий: " +
		"новое изменение внесено. Необходимо проверить, что именно было скорректировано."
	if *rec.AnalysisResult != want {
		t.Errorf("AnalysisResult = %q", *rec.AnalysisResult)
	}
}

func TestAnalysisService_GetAnalysisBeforeAnalyze(t *testing.T) {
	env := newTestEnv(t)
	id, _ := upload(t, env, "fresh.txt", []byte("x"))

	rec, err := env.analysis.GetAnalysis(context.Background(), id)
	if err != nil {
		t.Fatalf("GetAnalysis() ошибка: %v", err)
	}
	if rec.AnalysisResult != nil || rec.AnalysisUpdatedAt != nil {
		t.Error("до анализа результат должен отсутствовать")
	}
	if env.repo.updateCalls != 0 {
		t.Errorf("GetAnalysis вызвал Update %d раз", env.repo.updateCalls)
	}

	// Запись в хранилище тоже не изменилась
	stored, _ := env.repo.GetByID(context.Background(), id)
	if stored.HasAnalysis() {
		t.Error("GetAnalysis создал поля анализа")
	}
}

func TestAnalysisService_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.analysis.Analyze(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Analyze(999): ожидалась ErrNotFound, получено: %v", err)
	}
	if _, err := env.analysis.GetAnalysis(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAnalysis(999): ожидалась ErrNotFound, получено: %v", err)
	}
}

// pausingRepo после коммита первого Update не возвращает управление,
// пока не закрыт release. Так Analyze, закоммитивший раньше,
// завершается позже.
type pausingRepo struct {
	*memRepo
	once      sync.Once
	committed chan struct{}
	release   chan struct{}
}

func (r *pausingRepo) Update(ctx context.Context, id int64, upd model.FileUpdate) (*model.FileRecord, error) {
	rec, err := r.memRepo.Update(ctx, id, upd)
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.committed)
		<-r.release
	}
	return rec, err
}

func TestAnalysisService_ConcurrentAnalyzeServesLastCommit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id, _ := upload(t, env, "race.txt", []byte("x"))

	repo := &pausingRepo{
		memRepo:   env.repo,
		committed: make(chan struct{}),
		release:   make(chan struct{}),
	}
	env.analysis.repo = repo

	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)
	var mu sync.Mutex
	stamps := []time.Time{earlier, later}
	env.analysis.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		ts := stamps[0]
		stamps = stamps[1:]
		return ts
	}

	done := make(chan error, 1)
	go func() {
		_, err := env.analysis.Analyze(ctx, id)
		done <- err
	}()

	<-repo.committed
	if _, err := env.analysis.Analyze(ctx, id); err != nil {
		t.Fatalf("второй Analyze() ошибка: %v", err)
	}
	close(repo.release)
	if err := <-done; err != nil {
		t.Fatalf("первый Analyze() ошибка: %v", err)
	}

	stored, err := env.repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if !stored.AnalysisUpdatedAt.Equal(later) {
		t.Fatalf("в БД analysis_updated_at = %v, ожидается %v", stored.AnalysisUpdatedAt, later)
	}

	got, err := env.analysis.GetAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("GetAnalysis() ошибка: %v", err)
	}
	if got.AnalysisUpdatedAt == nil || !got.AnalysisUpdatedAt.Equal(later) {
		t.Errorf("GetAnalysis() analysis_updated_at = %v, в БД %v", got.AnalysisUpdatedAt, later)
	}
}

func TestAnalysisService_SeesResultWrittenByAnotherInstance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id, _ := upload(t, env, "shared.txt", []byte("x"))

	// Второй экземпляр сервиса со своим кэшем поверх той же БД
	other := NewAnalysisService(env.repo, NewCacheService(10, time.Minute), MockAnnotator{}, testLogger())

	before, err := other.GetAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("GetAnalysis() ошибка: %v", err)
	}
	if before.HasAnalysis() {
		t.Fatal("до анализа результата быть не должно")
	}
	// Прогреваем кэш второго экземпляра через Analyze-путь чтения метаданных
	if _, err := getRecord(ctx, other.repo, other.cache, id); err != nil {
		t.Fatalf("getRecord() ошибка: %v", err)
	}

	if _, err := env.analysis.Analyze(ctx, id); err != nil {
		t.Fatalf("Analyze() ошибка: %v", err)
	}

	after, err := other.GetAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("GetAnalysis() ошибка: %v", err)
	}
	if !after.HasAnalysis() {
		t.Error("второй экземпляр не видит результат анализа из БД")
	}
}
