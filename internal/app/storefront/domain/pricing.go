package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountWindow is the validity period of a variant's offer price.
// A nil Start means the offer is valid from the beginning of time; a nil
// End means there is no offer.
type DiscountWindow struct {
	Start *time.Time
	End   *time.Time
}

// IsValidAt reports whether t falls inside the window. Both ends are
// inclusive.
func (w DiscountWindow) IsValidAt(t time.Time) bool {
	if w.End == nil {
		return false
	}
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	return !t.After(*w.End)
}

// Window returns the variant's discount window.
func (v Variant) Window() DiscountWindow {
	return DiscountWindow{Start: v.DiscountStart, End: v.DiscountEnd}
}

// DiscountActive reports whether the offer price applies at now: it must be
// set, below the selling price and inside the window.
func (v Variant) DiscountActive(now time.Time) bool {
	if !v.OfferPrice.IsPositive() || !v.OfferPrice.LessThan(v.SellingPrice) {
		return false
	}
	return v.Window().IsValidAt(now)
}

// EffectivePrice is the offer price while the discount is active, else the
// selling price.
func (v Variant) EffectivePrice(now time.Time) Money {
	if v.DiscountActive(now) {
		return v.OfferPrice
	}
	return v.SellingPrice
}

// DiscountPercent is the rounded percentage saved at now, 0 when no
// discount applies.
func (v Variant) DiscountPercent(now time.Time) int {
	if !v.DiscountActive(now) || !v.SellingPrice.IsPositive() {
		return 0
	}
	saved := v.SellingPrice.Decimal().Sub(v.OfferPrice.Decimal())
	pct := saved.Div(v.SellingPrice.Decimal()).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// EffectivePrice of a product is the effective price of its default variant,
// or 0 when it has no variants.
func (p Product) EffectivePrice(now time.Time) Money {
	v, ok := p.DefaultVariant()
	if !ok {
		return Zero
	}
	return v.EffectivePrice(now)
}
