package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bigkaa/docvault/internal/repository"
)

// VersionResolver вычисляет номер следующей версии для имени файла.
// Блокировок не держит: упорядочивание обеспечивает UploadService.
type VersionResolver struct {
	repo repository.FileRepository
}

// NewVersionResolver создаёт VersionResolver.
func NewVersionResolver(repo repository.FileRepository) *VersionResolver {
	return &VersionResolver{repo: repo}
}

// NextVersion возвращает 1 для нового имени, иначе max(version) + 1.
func (v *VersionResolver) NextVersion(ctx context.Context, originalName string) (int, error) {
	latest, err := v.repo.GetLatestVersion(ctx, originalName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 1, nil
		}
		return 0, fmt.Errorf("%w: определение версии %q: %v", ErrRepository, originalName, err)
	}
	return latest.Version + 1, nil
}
