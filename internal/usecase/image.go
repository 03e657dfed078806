package usecase

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/citygrid/appeals-service/internal/domain"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// ImageUsecase stores uploaded binaries under uploadDir and records their
// metadata. Stored names are uuid-derived so client filenames never reach
// the filesystem.
type ImageUsecase struct {
	repo      ImageRepository
	uploadDir string
}

func NewImageUsecase(repo ImageRepository, uploadDir string) *ImageUsecase {
	return &ImageUsecase{repo: repo, uploadDir: uploadDir}
}

func (uc *ImageUsecase) Upload(ctx context.Context, originalName string, content []byte) (domain.Image, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExts[ext] {
		return domain.Image{}, domain.ValidationError{Reason: "only JPG/PNG/GIF images are supported"}
	}

	id := uuid.New()
	name := hex.EncodeToString(id[:]) + ext
	dst := filepath.Join(uc.uploadDir, name)

	if err := os.MkdirAll(uc.uploadDir, 0o755); err != nil {
		return domain.Image{}, errors.Wrap(err, "creating upload directory")
	}
	if err := os.WriteFile(dst, content, 0o644); err != nil {
		return domain.Image{}, errors.Wrap(err, "writing uploaded file")
	}

	return uc.repo.Create(ctx, name, dst)
}

func (uc *ImageUsecase) List(ctx context.Context) ([]domain.Image, error) {
	return uc.repo.List(ctx)
}
