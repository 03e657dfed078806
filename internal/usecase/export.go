package usecase

import (
	"context"

	"github.com/citygrid/appeals-service/internal/domain"
)

type ExportUsecase struct {
	repo ExportRepository
}

func NewExportUsecase(repo ExportRepository) *ExportUsecase {
	return &ExportUsecase{repo: repo}
}

// HistoryRows returns every audit entry, oldest first, joined with the
// owning appeal's type.
func (uc *ExportUsecase) HistoryRows(ctx context.Context) ([]HistoryExportRow, error) {
	return uc.repo.ListHistoryRows(ctx)
}

// AppealRows returns every appeal including soft-deleted ones.
func (uc *ExportUsecase) AppealRows(ctx context.Context) ([]domain.Appeal, error) {
	return uc.repo.ListAppealRows(ctx)
}
