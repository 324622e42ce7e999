// errors.go — таксономия ошибок сервисного слоя.
// Каждая ошибка, выходящая из сервиса, оборачивает ровно одну из них.
package service

import "errors"

var (
	// ErrValidation — некорректные входные данные (например, пустое имя файла).
	ErrValidation = errors.New("ошибка валидации")
	// ErrNotFound — запись с указанным ID не существует.
	ErrNotFound = errors.New("файл не найден")
	// ErrContentNotFound — запись существует, но содержимого нет на диске.
	ErrContentNotFound = errors.New("содержимое файла не найдено на диске")
	// ErrStorageWrite — ошибка записи содержимого при загрузке.
	ErrStorageWrite = errors.New("ошибка записи в хранилище")
	// ErrStorageRead — содержимое есть, но открыть его не удалось
	// (права, ENOTDIR, ошибка stat).
	ErrStorageRead = errors.New("ошибка чтения из хранилища")
	// ErrRepository — ошибка операции с базой метаданных.
	ErrRepository = errors.New("ошибка базы метаданных")
)
