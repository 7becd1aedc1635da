package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_cart"
	"github.com/light-bringer/storefront-service/internal/models/m_cart_item"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// SpannerCartRepo stores carts in the carts and cart_items tables. Save
// rewrites every line of the cart in one commit guarded by the cart
// version.
type SpannerCartRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	carts     *m_cart.Model
	items     *m_cart_item.Model
}

// NewSpannerCartRepo creates a new SpannerCartRepo.
func NewSpannerCartRepo(client *spanner.Client, c *committer.Committer) contracts.CartRepository {
	return &SpannerCartRepo{
		client:    client,
		committer: c,
		carts:     m_cart.NewModel(),
		items:     m_cart_item.NewModel(),
	}
}

// Load reads the cart and its lines from one snapshot.
func (r *SpannerCartRepo) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_cart.TableName, r.carts.Key(sessionID), r.carts.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.NewCart(sessionID), nil
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var data m_cart.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse cart: %w", err)
	}

	cart := domain.NewCart(sessionID)
	cart.Version = data.Version

	stmt := query.From(m_cart_item.TableName).
		Select(r.items.ReadColumns()...).
		Where(query.Eq(m_cart_item.SessionID, sessionID)).
		OrderBy(m_cart_item.Position, query.Asc).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate cart items: %w", err)
		}

		var line m_cart_item.Data
		if err := row.ToStruct(&line); err != nil {
			return nil, fmt.Errorf("failed to parse cart item: %w", err)
		}
		item, err := cartItemFromData(&line)
		if err != nil {
			return nil, err
		}

		if line.Slot == m_cart_item.SlotPreorder {
			cart.Preorder = &item
			continue
		}
		cart.Items = append(cart.Items, item)
	}

	return cart, nil
}

// Save replaces the stored cart when its version still matches.
func (r *SpannerCartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	next := cart.Version + 1

	plan := committer.NewPlan()
	if cart.Version == 0 {
		plan.Add(r.carts.InsertMut(cart.SessionID, next))
	} else {
		plan.Add(r.carts.BumpVersionMut(cart.SessionID, next))
	}
	plan.Add(r.items.DeleteAllMut(cart.SessionID))

	for pos, item := range cart.Items {
		mut, err := r.items.InsertMut(cartItemToData(cart.SessionID, m_cart_item.SlotCart, int64(pos), item))
		if err != nil {
			return fmt.Errorf("failed to build cart item mutation: %w", err)
		}
		plan.Add(mut)
	}
	if cart.Preorder != nil {
		mut, err := r.items.InsertMut(cartItemToData(cart.SessionID, m_cart_item.SlotPreorder, 0, *cart.Preorder))
		if err != nil {
			return fmt.Errorf("failed to build preorder mutation: %w", err)
		}
		plan.Add(mut)
	}

	row := committer.VersionedRow{
		Table:    m_cart.TableName,
		Key:      r.carts.Key(cart.SessionID),
		Column:   m_cart.Version,
		Expected: cart.Version,
	}
	if err := r.committer.ApplyWithVersionCheck(ctx, row, plan); err != nil {
		if errors.Is(err, committer.ErrVersionConflict) {
			return domain.ErrConcurrentModification
		}
		return fmt.Errorf("failed to save cart: %w", err)
	}

	cart.Version = next
	return nil
}

func cartItemToData(sessionID, slot string, pos int64, item domain.CartItem) *m_cart_item.Data {
	return &m_cart_item.Data{
		SessionID:      sessionID,
		Slot:           slot,
		VariantID:      item.ID,
		ProductID:      item.ProductID,
		Name:           item.Name,
		Price:          *item.Price.Decimal().Rat(),
		SellingPrice:   *item.SellingPrice.Decimal().Rat(),
		Image:          nullString(item.Image),
		Quantity:       int64(item.Quantity),
		MaxStock:       int64(item.MaxStock),
		Currency:       nullString(item.Currency),
		VariantValues:  item.VariantValues,
		DiscountActive: item.DiscountActive,
		Position:       pos,
	}
}

func cartItemFromData(d *m_cart_item.Data) (domain.CartItem, error) {
	price, err := moneyFromNumeric(&d.Price)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("cart item %s price: %w", d.VariantID, err)
	}
	selling, err := moneyFromNumeric(&d.SellingPrice)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("cart item %s selling price: %w", d.VariantID, err)
	}
	return domain.CartItem{
		ID:             d.VariantID,
		ProductID:      d.ProductID,
		Name:           d.Name,
		Price:          price,
		SellingPrice:   selling,
		Image:          d.Image.StringVal,
		Quantity:       int(d.Quantity),
		MaxStock:       int(d.MaxStock),
		Currency:       d.Currency.StringVal,
		VariantValues:  d.VariantValues,
		DiscountActive: d.DiscountActive,
		PreOrder:       d.Slot == m_cart_item.SlotPreorder,
	}, nil
}
