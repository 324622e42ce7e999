// Пакет blobstore — хранение содержимого версий файлов на диске.
// Запись через временный файл с fsync и эксклюзивной публикацией
// под уникальным именем, чтение для скачивания.
package blobstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FallbackExt — расширение для имён без расширения.
const FallbackExt = "dat"

// timestampLayout — секундная гранулярность метки времени в имени файла.
const timestampLayout = "20060102150405"

// maxBaseLen — максимальная длина базового имени в символах.
const maxBaseLen = 100

var (
	// ErrNotFound — содержимое отсутствует на диске.
	ErrNotFound = errors.New("содержимое не найдено на диске")
	// ErrWrite — ошибка записи содержимого (диск, права, путь).
	ErrWrite = errors.New("ошибка записи на диск")
)

// Store — хранилище содержимого под корневой директорией.
type Store struct {
	root string
	now  func() time.Time
}

// SaveResult — результат сохранения содержимого.
type SaveResult struct {
	// StoredName — уникальное имя файла в корне хранилища
	StoredName string
	// Path — полный путь к файлу
	Path string
	// Size — количество записанных байт
	Size int64
}

// Option настраивает Store.
type Option func(*Store)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New создаёт хранилище. Корневая директория создаётся при отсутствии,
// путь приводится к абсолютному: он пишется в storage_path.
func New(root string, opts ...Option) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: некорректный путь %s: %v", ErrWrite, root, err)
	}
	root = abs
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("%w: не удалось создать директорию %s: %v", ErrWrite, root, err)
	}
	s := &Store{root: root, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root возвращает корневую директорию хранилища.
func (s *Store) Root() string {
	return s.root
}

// Save записывает поток под именем {base}_v{version}_{timestamp}.{ext}.
//
// Если reader поддерживает io.Seeker, размер измеряется заранее
// (seek в конец и возврат в начало) и сверяется с записанным.
// Файл публикуется через os.Link, поэтому существующее имя никогда
// не перезаписывается: при совпадении добавляется короткий UUID.
func (s *Store) Save(originalName string, version int, r io.Reader) (*SaveResult, error) {
	expected := int64(-1)
	if seeker, ok := r.(io.Seeker); ok {
		size, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: измерение размера: %v", ErrWrite, err)
		}
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: возврат позиции чтения: %v", ErrWrite, err)
		}
		expected = size
	}

	if err := os.MkdirAll(s.root, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("%w: создание временного файла: %v", ErrWrite, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // после Link временный файл не нужен

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: запись данных: %v", ErrWrite, err)
	}
	if expected >= 0 && size != expected {
		tmp.Close()
		return nil, fmt.Errorf("%w: записано %d байт, ожидалось %d", ErrWrite, size, expected)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: fsync: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: закрытие файла: %v", ErrWrite, err)
	}

	storedName := StoredName(originalName, version, s.now())
	fullPath := filepath.Join(s.root, storedName)
	if err := os.Link(tmpPath, fullPath); err != nil {
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: публикация файла: %v", ErrWrite, err)
		}
		storedName = withSuffix(storedName, uuid.New().String()[:8])
		fullPath = filepath.Join(s.root, storedName)
		if err := os.Link(tmpPath, fullPath); err != nil {
			return nil, fmt.Errorf("%w: публикация файла: %v", ErrWrite, err)
		}
	}

	return &SaveResult{
		StoredName: storedName,
		Path:       fullPath,
		Size:       size,
	}, nil
}

// Open открывает содержимое по пути. Вызывающий код закрывает файл.
func (s *Store) Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("ошибка открытия %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ошибка stat %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s — директория", ErrNotFound, path)
	}
	return f, nil
}

// Delete удаляет содержимое. Отсутствующий файл не считается ошибкой.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ошибка удаления %s: %w", path, err)
	}
	return nil
}

// CheckReady проверяет, что корень хранилища доступен для записи.
// Возвращает статус ("ok", "fail") и сообщение.
func (s *Store) CheckReady() (status, message string) {
	f, err := os.CreateTemp(s.root, ".ready-*")
	if err != nil {
		return "fail", fmt.Sprintf("хранилище недоступно для записи: %v", err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name) //nolint:errcheck // пробный файл
	return "ok", "хранилище доступно для записи"
}

// StoredName строит имя файла на диске: {base}_v{version}_{timestamp}.{ext}.
// base — имя без последнего расширения, ext — последнее расширение или FallbackExt.
func StoredName(originalName string, version int, at time.Time) string {
	base, ext := splitName(filepath.Base(originalName))
	base = sanitize(base)
	if runes := []rune(base); len(runes) > maxBaseLen {
		base = string(runes[:maxBaseLen])
	}
	ext = sanitize(ext)
	if ext == "" {
		ext = FallbackExt
	}
	return fmt.Sprintf("%s_v%d_%s.%s", base, version, at.Format(timestampLayout), ext)
}

// splitName делит имя по последней точке.
// "report.pdf" → ("report", "pdf"), "archive.tar.gz" → ("archive.tar", "gz"),
// "README" → ("README", "").
func splitName(name string) (base, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// withSuffix вставляет суффикс перед расширением.
func withSuffix(storedName, suffix string) string {
	base, ext := splitName(storedName)
	return fmt.Sprintf("%s_%s.%s", base, suffix, ext)
}

// sanitize заменяет на "_" разделители пути, управляющие символы
// и символы, недопустимые в именах файлов Windows.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '/' || r == '\\' || r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		case r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "." || out == ".." {
		return "_"
	}
	return out
}
