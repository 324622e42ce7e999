package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bigkaa/docvault/internal/domain/model"
	"github.com/bigkaa/docvault/internal/repository"
	"github.com/bigkaa/docvault/internal/storage/blobstore"
)

// memRepo — in-memory реализация FileRepository с теми же
// ограничениями уникальности, что и таблица files.
type memRepo struct {
	mu      sync.Mutex
	nextID  int64
	records []*model.FileRecord
	clock   time.Time

	// foreignConflicts — сколько раз перед Create вставить «чужую»
	// запись с той же (original_name, version), имитируя другой процесс.
	foreignConflicts int
	// createErr — ошибка, возвращаемая Create.
	createErr error
	// latestErr — ошибка, возвращаемая GetLatestVersion.
	latestErr error

	createCalls int
	updateCalls int
}

func newMemRepo() *memRepo {
	return &memRepo{clock: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (r *memRepo) Create(_ context.Context, f *model.FileRecord) (*model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCalls++
	if r.createErr != nil {
		return nil, r.createErr
	}

	rec := *f
	if rec.Version == 0 {
		rec.Version = 1
	}
	if rec.UploadedBy == 0 {
		rec.UploadedBy = model.DefaultUploader
	}

	if r.foreignConflicts > 0 {
		r.foreignConflicts--
		r.insert(&model.FileRecord{
			OriginalName: rec.OriginalName,
			StoredName:   fmt.Sprintf("foreign-%d", r.nextID+1),
			Version:      rec.Version,
			StoragePath:  "/nonexistent/foreign",
		})
	}

	for _, existing := range r.records {
		if existing.StoredName == rec.StoredName ||
			(existing.OriginalName == rec.OriginalName && existing.Version == rec.Version) {
			return nil, fmt.Errorf("%w: %s v%d", repository.ErrConflict, rec.OriginalName, rec.Version)
		}
	}

	r.insert(&rec)
	cp := rec
	return &cp, nil
}

// insert добавляет запись с ID и временем загрузки; вызывается под mu.
func (r *memRepo) insert(rec *model.FileRecord) {
	r.nextID++
	rec.ID = r.nextID
	if rec.UploadedAt.IsZero() {
		r.clock = r.clock.Add(time.Second)
		rec.UploadedAt = r.clock
	}
	if rec.UploadedBy == 0 {
		rec.UploadedBy = model.DefaultUploader
	}
	r.records = append(r.records, rec)
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.ID == id {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo) GetLatestVersion(_ context.Context, name string) (*model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.latestErr != nil {
		return nil, r.latestErr
	}

	var latest *model.FileRecord
	for _, rec := range r.records {
		if rec.OriginalName == name && (latest == nil || rec.Version > latest.Version) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *memRepo) Update(_ context.Context, id int64, upd model.FileUpdate) (*model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updateCalls++
	for i, rec := range r.records {
		if rec.ID == id {
			next := upd.Apply(*rec)
			r.records[i] = &next
			cp := next
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo) ListLatestPerName(_ context.Context) ([]*model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	latest := make(map[string]*model.FileRecord)
	for _, rec := range r.records {
		cur, ok := latest[rec.OriginalName]
		if !ok || rec.Version > cur.Version {
			latest[rec.OriginalName] = rec
		}
	}

	result := make([]*model.FileRecord, 0, len(latest))
	for _, rec := range latest {
		cp := *rec
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].UploadedAt.Equal(result[j].UploadedAt) {
			return result[i].UploadedAt.After(result[j].UploadedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// count возвращает количество записей.
func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// testLogger — логгер, отбрасывающий вывод.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv — набор сервисов поверх memRepo и временного хранилища.
type testEnv struct {
	repo     *memRepo
	store    *blobstore.Store
	uploads  *UploadService
	files    *FileService
	analysis *AnalysisService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := newMemRepo()
	store, err := blobstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания хранилища: %v", err)
	}
	logger := testLogger()
	cache := NewCacheService(100, time.Minute)

	return &testEnv{
		repo:     repo,
		store:    store,
		uploads:  NewUploadService(repo, NewVersionResolver(repo), store, 3, logger),
		files:    NewFileService(repo, store, cache, logger),
		analysis: NewAnalysisService(repo, cache, MockAnnotator{}, logger),
	}
}

// newRecordForTest создаёт запись версии без содержимого на диске.
func newRecordForTest(name string, version int) *model.FileRecord {
	stored := fmt.Sprintf("%s_v%d", name, version)
	return &model.FileRecord{
		OriginalName: name,
		StoredName:   stored,
		Version:      version,
		StoragePath:  "/nonexistent/" + stored,
		SizeBytes:    10,
	}
}
