// Пакет model — доменные модели docvault.
// FileRecord — одна загруженная версия документа (таблица files).
package model

import "time"

// DefaultUploader — идентификатор загрузившего, пока в сервисе нет аутентификации.
const DefaultUploader = 1

// FileRecord — запись одной версии файла.
type FileRecord struct {
	// ID — идентификатор записи, назначается БД
	ID int64
	// OriginalName — логическое имя, под которым группируются версии
	OriginalName string
	// StoredName — уникальное имя файла на диске
	StoredName string
	// Version — номер версии в пределах OriginalName, начиная с 1
	Version int
	// StoragePath — путь к содержимому на диске
	StoragePath string
	// UploadedAt — время создания записи
	UploadedAt time.Time
	// UploadedBy — идентификатор загрузившего
	UploadedBy int
	// SizeBytes — размер содержимого в байтах
	SizeBytes int64
	// AnalysisResult — текст аннотации (nil до первого анализа)
	AnalysisResult *string
	// AnalysisUpdatedAt — время записи аннотации (nil до первого анализа)
	AnalysisUpdatedAt *time.Time
}

// HasAnalysis сообщает, выполнялся ли анализ записи.
func (f *FileRecord) HasAnalysis() bool {
	return f.AnalysisResult != nil && *f.AnalysisResult != ""
}

// Metadata возвращает представление записи для анализатора.
func (f *FileRecord) Metadata() AnalysisMetadata {
	return AnalysisMetadata{
		OriginalName: f.OriginalName,
		SizeBytes:    f.SizeBytes,
		Version:      f.Version,
		UploadedAt:   f.UploadedAt,
	}
}

// FileUpdate — частичное обновление записи.
// Изменяемы только поля анализа; nil — поле не меняется.
type FileUpdate struct {
	AnalysisResult    *string
	AnalysisUpdatedAt *time.Time
}

// IsEmpty сообщает, что обновление ничего не меняет.
func (u FileUpdate) IsEmpty() bool {
	return u.AnalysisResult == nil && u.AnalysisUpdatedAt == nil
}

// Apply возвращает копию записи с применённым обновлением.
// Исходная запись не изменяется.
func (u FileUpdate) Apply(f FileRecord) FileRecord {
	if u.AnalysisResult != nil {
		v := *u.AnalysisResult
		f.AnalysisResult = &v
	}
	if u.AnalysisUpdatedAt != nil {
		v := *u.AnalysisUpdatedAt
		f.AnalysisUpdatedAt = &v
	}
	return f
}

// AnalysisMetadata — атрибуты записи, передаваемые анализатору.
type AnalysisMetadata struct {
	OriginalName string
	SizeBytes    int64
	Version      int
	UploadedAt   time.Time
}
