package usecase

import (
	"context"

	"github.com/cistech/market/internal/domain"
)

type MetadataUC struct {
	Metadata domain.MetadataRepo
}

func (uc *MetadataUC) Tree(ctx context.Context) (domain.MetadataTree, error) {
	return uc.Metadata.Tree(ctx)
}

func (uc *MetadataUC) Categories(ctx context.Context) ([]domain.Category, error) {
	return uc.Metadata.Categories(ctx)
}
