package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/docvault/internal/config"
	"github.com/bigkaa/docvault/internal/database"
	"github.com/bigkaa/docvault/internal/domain/model"
)

// setupTestDB запускает PostgreSQL контейнер и применяет миграции.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("docvault_test"),
		postgres.WithUsername("docvault"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	cfg := &config.Config{
		DBHost:     host,
		DBPort:     port.Int(),
		DBName:     "docvault_test",
		DBUser:     "docvault",
		DBPassword: "test-password",
		DBSSLMode:  "disable",
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Ошибка миграций: %v", err)
	}

	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Ошибка подключения: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	return pool
}

// newRecord создаёт запись версии с уникальным stored_name.
func newRecord(name string, version int, size int64, uploadedAt time.Time) *model.FileRecord {
	stored := fmt.Sprintf("%s_v%d_%d", name, version, uploadedAt.UnixNano())
	return &model.FileRecord{
		OriginalName: name,
		StoredName:   stored,
		Version:      version,
		StoragePath:  "/data/" + stored,
		UploadedAt:   uploadedAt,
		SizeBytes:    size,
	}
}

func TestFileRepository_CreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewFileRepository(pool)

	in := newRecord("report.pdf", 0, 500000, time.Time{})
	created, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	if created.ID == 0 {
		t.Error("ID не назначен")
	}
	if created.Version != 1 {
		t.Errorf("Version = %d, ожидается значение по умолчанию 1", created.Version)
	}
	if created.UploadedBy != model.DefaultUploader {
		t.Errorf("UploadedBy = %d, ожидается %d", created.UploadedBy, model.DefaultUploader)
	}
	if created.UploadedAt.IsZero() {
		t.Error("UploadedAt не установлен по умолчанию")
	}
	if created.AnalysisResult != nil || created.AnalysisUpdatedAt != nil {
		t.Error("поля анализа должны быть NULL после создания")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if got.StoredName != in.StoredName || got.SizeBytes != 500000 {
		t.Errorf("GetByID() = %+v", got)
	}

	if _, err := repo.GetByID(ctx, 999999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(999999) ожидали ErrNotFound, получили: %v", err)
	}
}

func TestFileRepository_UniqueConstraints(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewFileRepository(pool)

	now := time.Now().UTC()
	first := newRecord("a.txt", 1, 10, now)
	if _, err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	// Та же пара (original_name, version)
	dupVersion := newRecord("a.txt", 1, 10, now.Add(time.Second))
	if _, err := repo.Create(ctx, dupVersion); !errors.Is(err, ErrConflict) {
		t.Errorf("дубликат версии: ожидали ErrConflict, получили: %v", err)
	}

	// Тот же stored_name
	dupStored := newRecord("b.txt", 1, 10, now)
	dupStored.StoredName = first.StoredName
	if _, err := repo.Create(ctx, dupStored); !errors.Is(err, ErrConflict) {
		t.Errorf("дубликат stored_name: ожидали ErrConflict, получили: %v", err)
	}
}

func TestFileRepository_GetLatestVersion(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewFileRepository(pool)

	if _, err := repo.GetLatestVersion(ctx, "none.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидали ErrNotFound, получили: %v", err)
	}

	base := time.Now().UTC()
	for v := 1; v <= 3; v++ {
		if _, err := repo.Create(ctx, newRecord("doc.docx", v, int64(v*100), base.Add(time.Duration(v)*time.Second))); err != nil {
			t.Fatalf("Create(v%d) ошибка: %v", v, err)
		}
	}

	latest, err := repo.GetLatestVersion(ctx, "doc.docx")
	if err != nil {
		t.Fatalf("GetLatestVersion() ошибка: %v", err)
	}
	if latest.Version != 3 {
		t.Errorf("Version = %d, ожидается 3", latest.Version)
	}
}

func TestFileRepository_Update(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewFileRepository(pool)

	created, err := repo.Create(ctx, newRecord("img.png", 1, 42, time.Now().UTC()))
	if err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	first := "первый анализ"
	firstAt := time.Now().UTC().Truncate(time.Microsecond)
	updated, err := repo.Update(ctx, created.ID, model.FileUpdate{AnalysisResult: &first, AnalysisUpdatedAt: &firstAt})
	if err != nil {
		t.Fatalf("Update() ошибка: %v", err)
	}
	if updated.AnalysisResult == nil || *updated.AnalysisResult != first {
		t.Errorf("AnalysisResult = %v", updated.AnalysisResult)
	}
	if updated.Version != created.Version || updated.StoredName != created.StoredName {
		t.Error("Update изменил неизменяемые поля")
	}
	if created.AnalysisResult != nil {
		t.Error("Update изменил исходную запись")
	}

	// Повторный анализ перезаписывает текст
	second := "второй анализ"
	secondAt := firstAt.Add(time.Minute)
	updated, err = repo.Update(ctx, created.ID, model.FileUpdate{AnalysisResult: &second, AnalysisUpdatedAt: &secondAt})
	if err != nil {
		t.Fatalf("Update() ошибка: %v", err)
	}
	if *updated.AnalysisResult != second {
		t.Errorf("AnalysisResult = %q, ожидается %q", *updated.AnalysisResult, second)
	}
	if !updated.AnalysisUpdatedAt.Equal(secondAt) {
		t.Errorf("AnalysisUpdatedAt = %v, ожидается %v", updated.AnalysisUpdatedAt, secondAt)
	}

	if _, err := repo.Update(ctx, 999999, model.FileUpdate{AnalysisResult: &first, AnalysisUpdatedAt: &firstAt}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(999999) ожидали ErrNotFound, получили: %v", err)
	}

	// Пустое обновление возвращает текущее состояние без изменений
	unchanged, err := repo.Update(ctx, created.ID, model.FileUpdate{})
	if err != nil {
		t.Fatalf("Update(пустое) ошибка: %v", err)
	}
	if unchanged.AnalysisResult == nil || *unchanged.AnalysisResult != second {
		t.Errorf("AnalysisResult = %v, ожидается %q", unchanged.AnalysisResult, second)
	}
	if _, err := repo.Update(ctx, 999999, model.FileUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(999999, пустое) ожидали ErrNotFound, получили: %v", err)
	}
}

func TestFileRepository_ListLatestPerName(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewFileRepository(pool)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uploads := []struct {
		name    string
		version int
		offset  time.Duration
	}{
		{"report.pdf", 1, 0},
		{"notes.txt", 1, time.Minute},
		{"report.pdf", 2, 2 * time.Minute},
		{"image.png", 1, 3 * time.Minute},
		{"notes.txt", 2, 4 * time.Minute},
		{"notes.txt", 3, 5 * time.Minute},
	}
	for _, u := range uploads {
		if _, err := repo.Create(ctx, newRecord(u.name, u.version, 1, base.Add(u.offset))); err != nil {
			t.Fatalf("Create(%s v%d) ошибка: %v", u.name, u.version, err)
		}
	}

	list, err := repo.ListLatestPerName(ctx)
	if err != nil {
		t.Fatalf("ListLatestPerName() ошибка: %v", err)
	}

	want := []struct {
		name    string
		version int
	}{
		{"notes.txt", 3},
		{"image.png", 1},
		{"report.pdf", 2},
	}
	if len(list) != len(want) {
		t.Fatalf("получено %d записей, ожидается %d", len(list), len(want))
	}
	for i, w := range want {
		if list[i].OriginalName != w.name || list[i].Version != w.version {
			t.Errorf("[%d] = %s v%d, ожидается %s v%d",
				i, list[i].OriginalName, list[i].Version, w.name, w.version)
		}
	}
}
