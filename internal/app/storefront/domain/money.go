package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount in the store currency.
// The zero value is 0.
type Money struct {
	d decimal.Decimal
}

// Zero is 0 in the store currency.
var Zero = Money{}

// NewMoney creates Money from a whole amount.
func NewMoney(amount int64) Money {
	return Money{d: decimal.NewFromInt(amount)}
}

// MoneyFromDecimal wraps a decimal.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// MoneyFromFloat converts a float. Use only at API boundaries.
func MoneyFromFloat(f float64) Money {
	return Money{d: decimal.NewFromFloat(f)}
}

// ParseMoney parses a decimal string such as "1250.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return Money{d: d}, nil
}

func (m Money) Add(other Money) Money      { return Money{d: m.d.Add(other.d)} }
func (m Money) Subtract(other Money) Money { return Money{d: m.d.Sub(other.d)} }

// Times multiplies by a quantity.
func (m Money) Times(qty int) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(int64(qty)))}
}

func (m Money) IsZero() bool              { return m.d.IsZero() }
func (m Money) IsNegative() bool          { return m.d.IsNegative() }
func (m Money) IsPositive() bool          { return m.d.IsPositive() }
func (m Money) LessThan(other Money) bool { return m.d.LessThan(other.d) }
func (m Money) GreaterThan(other Money) bool {
	return m.d.GreaterThan(other.d)
}
func (m Money) Equals(other Money) bool { return m.d.Equal(other.d) }

// Cmp returns -1, 0 or +1.
func (m Money) Cmp(other Money) int { return m.d.Cmp(other.d) }

// NonNegative returns m, or Zero when m is negative.
func (m Money) NonNegative() Money {
	if m.d.IsNegative() {
		return Zero
	}
	return m
}

// Decimal exposes the underlying value.
func (m Money) Decimal() decimal.Decimal { return m.d }

// Float64 is an approximation for display only.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

// String renders the shortest exact form: "460", "12.5".
func (m Money) String() string { return m.d.String() }

// MarshalJSON encodes Money as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

// UnmarshalJSON accepts a number, a numeric string, an empty string or null.
// The upstream API is not consistent about which one it sends.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*m = Zero
			return nil
		}
		parsed, err := ParseMoney(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid money amount %s: %w", data, err)
	}
	m.d = d
	return nil
}
