package repo

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-service/internal/app/storefront/contracts"
	"github.com/light-bringer/storefront-service/internal/app/storefront/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_wishlist"
	"github.com/light-bringer/storefront-service/internal/models/m_wishlist_item"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// SpannerWishlistRepo stores wishlists in the wishlists and wishlist_items
// tables.
type SpannerWishlistRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	lists     *m_wishlist.Model
	items     *m_wishlist_item.Model
}

// NewSpannerWishlistRepo creates a new SpannerWishlistRepo.
func NewSpannerWishlistRepo(client *spanner.Client, c *committer.Committer) contracts.WishlistRepository {
	return &SpannerWishlistRepo{
		client:    client,
		committer: c,
		lists:     m_wishlist.NewModel(),
		items:     m_wishlist_item.NewModel(),
	}
}

func (r *SpannerWishlistRepo) Load(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_wishlist.TableName, r.lists.Key(sessionID), []string{m_wishlist.Version})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.NewWishlist(sessionID), nil
		}
		return nil, fmt.Errorf("failed to read wishlist: %w", err)
	}

	w := domain.NewWishlist(sessionID)
	if err := row.Column(0, &w.Version); err != nil {
		return nil, fmt.Errorf("failed to parse wishlist: %w", err)
	}

	stmt := query.From(m_wishlist_item.TableName).
		Select(r.items.ReadColumns()...).
		Where(query.Eq(m_wishlist_item.SessionID, sessionID)).
		OrderBy(m_wishlist_item.AddedAt, query.Asc).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate wishlist items: %w", err)
		}

		var d m_wishlist_item.Data
		if err := row.ToStruct(&d); err != nil {
			return nil, fmt.Errorf("failed to parse wishlist item: %w", err)
		}
		price, err := moneyFromNumeric(&d.Price)
		if err != nil {
			return nil, err
		}
		selling, err := moneyFromNumeric(&d.SellingPrice)
		if err != nil {
			return nil, err
		}
		w.Items = append(w.Items, domain.WishlistItem{
			ID:             d.VariantID,
			ProductID:      d.ProductID,
			Name:           d.Name,
			Price:          price,
			SellingPrice:   selling,
			Image:          d.Image.StringVal,
			VariantValues:  d.VariantValues,
			DiscountActive: d.DiscountActive,
			AddedAt:        d.AddedAt,
		})
	}

	return w, nil
}

func (r *SpannerWishlistRepo) Save(ctx context.Context, w *domain.Wishlist) error {
	next := w.Version + 1

	plan := committer.NewPlan()
	if w.Version == 0 {
		plan.Add(r.lists.InsertMut(w.SessionID, next))
	} else {
		plan.Add(r.lists.BumpVersionMut(w.SessionID, next))
	}
	plan.Add(r.items.DeleteAllMut(w.SessionID))

	for _, item := range w.Items {
		mut, err := r.items.InsertMut(&m_wishlist_item.Data{
			SessionID:      w.SessionID,
			VariantID:      item.ID,
			ProductID:      item.ProductID,
			Name:           item.Name,
			Price:          *item.Price.Decimal().Rat(),
			SellingPrice:   *item.SellingPrice.Decimal().Rat(),
			Image:          nullString(item.Image),
			VariantValues:  item.VariantValues,
			DiscountActive: item.DiscountActive,
			AddedAt:        item.AddedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to build wishlist item mutation: %w", err)
		}
		plan.Add(mut)
	}

	row := committer.VersionedRow{
		Table:    m_wishlist.TableName,
		Key:      r.lists.Key(w.SessionID),
		Column:   m_wishlist.Version,
		Expected: w.Version,
	}
	if err := r.committer.ApplyWithVersionCheck(ctx, row, plan); err != nil {
		if errors.Is(err, committer.ErrVersionConflict) {
			return domain.ErrConcurrentModification
		}
		return fmt.Errorf("failed to save wishlist: %w", err)
	}

	w.Version = next
	return nil
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func moneyFromNumeric(r *big.Rat) (domain.Money, error) {
	return domain.ParseMoney(spanner.NumericString(r))
}
