package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/docvault/internal/domain/model"
)

// fileColumns — список столбцов таблицы files для SELECT/RETURNING.
const fileColumns = `id, original_name, stored_name, version, storage_path,
	uploaded_at, uploaded_by, size_bytes, analysis_result, analysis_updated_at`

// FileRepository — интерфейс доступа к записям версий файлов.
type FileRepository interface {
	// Create вставляет запись и возвращает её с назначенным ID и значениями по умолчанию.
	Create(ctx context.Context, f *model.FileRecord) (*model.FileRecord, error)
	// GetByID возвращает запись по ID или ErrNotFound.
	GetByID(ctx context.Context, id int64) (*model.FileRecord, error)
	// GetLatestVersion возвращает запись с максимальной версией для имени или ErrNotFound.
	GetLatestVersion(ctx context.Context, originalName string) (*model.FileRecord, error)
	// Update применяет частичное обновление и возвращает новую запись.
	Update(ctx context.Context, id int64, upd model.FileUpdate) (*model.FileRecord, error)
	// ListLatestPerName возвращает по одной (последней) версии на каждое имя,
	// новые загрузки первыми.
	ListLatestPerName(ctx context.Context) ([]*model.FileRecord, error)
}

// fileRepo — реализация FileRepository через pgx.
type fileRepo struct {
	db DBTX
	tx *TxRunner
}

// NewFileRepository создаёт репозиторий записей файлов.
func NewFileRepository(db DBTX) FileRepository {
	return &fileRepo{db: db, tx: NewTxRunner(db)}
}

func (r *fileRepo) Create(ctx context.Context, f *model.FileRecord) (*model.FileRecord, error) {
	version := f.Version
	if version == 0 {
		version = 1
	}
	uploadedBy := f.UploadedBy
	if uploadedBy == 0 {
		uploadedBy = model.DefaultUploader
	}
	// NULL → DEFAULT now() через COALESCE
	var uploadedAt *time.Time
	if !f.UploadedAt.IsZero() {
		uploadedAt = &f.UploadedAt
	}

	query := fmt.Sprintf(`
		INSERT INTO files (original_name, stored_name, version, storage_path,
			uploaded_at, uploaded_by, size_bytes, analysis_result, analysis_updated_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()), $6, $7, $8, $9)
		RETURNING %s`, fileColumns)

	created, err := scanFile(r.db.QueryRow(ctx, query,
		f.OriginalName, f.StoredName, version, f.StoragePath,
		uploadedAt, uploadedBy, f.SizeBytes, f.AnalysisResult, f.AnalysisUpdatedAt,
	))
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return nil, fmt.Errorf("%w: %s v%d (%s)", ErrConflict, f.OriginalName, version, constraint)
		}
		return nil, fmt.Errorf("ошибка создания записи файла: %w", err)
	}
	return created, nil
}

func (r *fileRepo) GetByID(ctx context.Context, id int64) (*model.FileRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM files WHERE id = $1`, fileColumns)

	f, err := scanFile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения файла: %w", err)
	}
	return f, nil
}

func (r *fileRepo) GetLatestVersion(ctx context.Context, originalName string) (*model.FileRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM files
		WHERE original_name = $1
		ORDER BY version DESC, id DESC
		LIMIT 1`, fileColumns)

	f, err := scanFile(r.db.QueryRow(ctx, query, originalName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения последней версии: %w", err)
	}
	return f, nil
}

// Update блокирует строку, строит новую запись из текущей и диффа
// и записывает изменяемые поля. version, stored_name и storage_path не трогаются.
func (r *fileRepo) Update(ctx context.Context, id int64, upd model.FileUpdate) (*model.FileRecord, error) {
	// Пустое обновление не открывает транзакцию и не берёт блокировку.
	if upd.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var updated *model.FileRecord

	err := r.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		selectQuery := fmt.Sprintf(`SELECT %s FROM files WHERE id = $1 FOR UPDATE`, fileColumns)
		current, err := scanFile(tx.QueryRow(ctx, selectQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("ошибка блокировки записи: %w", err)
		}

		next := upd.Apply(*current)

		updateQuery := fmt.Sprintf(`
			UPDATE files
			SET analysis_result = $2, analysis_updated_at = $3
			WHERE id = $1
			RETURNING %s`, fileColumns)
		updated, err = scanFile(tx.QueryRow(ctx, updateQuery,
			id, next.AnalysisResult, next.AnalysisUpdatedAt,
		))
		if err != nil {
			return fmt.Errorf("ошибка обновления записи: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *fileRepo) ListLatestPerName(ctx context.Context) ([]*model.FileRecord, error) {
	// DISTINCT ON гарантирует одну строку на имя даже при дублях версии.
	// id DESC делает порядок детерминированным при равных uploaded_at.
	query := fmt.Sprintf(`
		SELECT %s FROM (
			SELECT DISTINCT ON (original_name) *
			FROM files
			ORDER BY original_name, version DESC, id DESC
		) latest
		ORDER BY uploaded_at DESC, id DESC`, fileColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка файлов: %w", err)
	}
	defer rows.Close()

	result := make([]*model.FileRecord, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования файла: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}
	return result, nil
}

// scanFile читает строку в порядке fileColumns.
func scanFile(row pgx.Row) (*model.FileRecord, error) {
	f := &model.FileRecord{}
	err := row.Scan(
		&f.ID, &f.OriginalName, &f.StoredName, &f.Version, &f.StoragePath,
		&f.UploadedAt, &f.UploadedBy, &f.SizeBytes, &f.AnalysisResult, &f.AnalysisUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}
