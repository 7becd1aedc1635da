package contracts

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
)

// ProductFeed is the merged product list built by incremental loading.
type ProductFeed interface {
	Snapshot() []domain.Product
	Find(productID string) (domain.Product, bool)
	HasMore() bool
	LoadMore(ctx context.Context) (added int, err error)
	LoadAll(ctx context.Context) error
	ScheduleRefresh()
}

// BusinessSource serves the store configuration.
type BusinessSource interface {
	Business(ctx context.Context) (domain.Business, error)
}
