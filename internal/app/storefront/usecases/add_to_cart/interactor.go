package add_to_cart

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/storefront/catalog"
	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/app/storefront/tracking"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

// Request contains the variant to add. VariantID wins over VariantValues;
// with neither the product's default variant is used.
type Request struct {
	SessionID     string
	ProductID     string
	VariantID     string
	VariantValues []string
	Quantity      int
}

// Interactor handles the add to cart use case.
type Interactor struct {
	feed     contracts.ProductFeed
	carts    contracts.CartRepository
	recorder *tracking.Recorder
	clock    clock.Clock
}

// NewInteractor creates a new add to cart interactor.
func NewInteractor(
	feed contracts.ProductFeed,
	carts contracts.CartRepository,
	recorder *tracking.Recorder,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		feed:     feed,
		carts:    carts,
		recorder: recorder,
		clock:    clock,
	}
}

// Execute adds the variant to the cart, or to the preorder slot when the
// product is sold as a preorder.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Cart, error) {
	product, err := catalog.FindProduct(ctx, i.feed, req.ProductID)
	if err != nil {
		return nil, err
	}
	variant, err := catalog.ResolveVariant(product, req.VariantID, req.VariantValues)
	if err != nil {
		return nil, err
	}

	now := i.clock.Now()
	item := domain.CartItem{
		ID:             variant.ID,
		ProductID:      product.ID,
		Name:           product.Name,
		Price:          variant.EffectivePrice(now),
		SellingPrice:   variant.SellingPrice,
		Image:          product.Image(variant),
		Quantity:       req.Quantity,
		MaxStock:       variant.Stock,
		Currency:       product.Currency,
		VariantValues:  variant.Values,
		DiscountActive: variant.DiscountActive(now),
	}

	cart, err := i.carts.Load(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	preorder := product.PreOrder(variant)
	if preorder {
		err = cart.AddPreorder(item)
	} else {
		err = cart.Add(item)
	}
	if err != nil {
		return nil, err
	}

	if err := i.carts.Save(ctx, cart); err != nil {
		logger.With(logger.String("op", "add_to_cart")).Error(ctx, "failed to save cart",
			logger.String("session_id", req.SessionID), logger.ErrorF(err))
		return nil, fmt.Errorf("save cart: %w", err)
	}

	i.recorder.Record(ctx, &domain.AddToCartEvent{
		SessionID: req.SessionID,
		ProductID: product.ID,
		VariantID: variant.ID,
		Quantity:  max(req.Quantity, 1),
		Price:     item.Price,
		PreOrder:  preorder,
		At:        now,
	})

	return cart, nil
}
