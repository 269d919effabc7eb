package token

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrInvalidAmount   = errors.New("token: invalid amount string")
	ErrNegativeAmount  = errors.New("token: negative amount")
	ErrTooManyDecimals = errors.New("token: too many decimal places")
)

// Amount is an immutable value object holding a token quantity in base units.
// Use it for contract call arguments; use the wei helpers for display.
type Amount struct {
	raw      *big.Int
	decimals int32
}

// NewAmount creates an Amount from a raw base-unit value.
func NewAmount(raw *big.Int, decimals int32) (Amount, error) {
	if raw == nil {
		return Amount{}, ErrInvalidAmount
	}
	if raw.Sign() < 0 {
		return Amount{}, ErrNegativeAmount
	}
	return Amount{raw: new(big.Int).Set(raw), decimals: decimals}, nil
}

// Zero creates a zero Amount with the given precision.
func Zero(decimals int32) Amount {
	return Amount{raw: big.NewInt(0), decimals: decimals}
}

// ParseBase creates an Amount from a base-unit digit string ("1500000000000000000").
func ParseBase(s string, decimals int32) (Amount, error) {
	if s == "" {
		return Zero(decimals), nil
	}
	raw, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return NewAmount(raw, decimals)
}

// ParseDisplay creates an Amount from a human-readable decimal string ("1.5").
// Input with more fractional digits than the precision is rejected.
func ParseDisplay(s string, decimals int32) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return Amount{}, ErrNegativeAmount
	}

	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return Amount{}, ErrTooManyDecimals
	}

	return Amount{raw: scaled.BigInt(), decimals: decimals}, nil
}

// Raw returns a copy of the base-unit value.
func (a Amount) Raw() *big.Int {
	if a.raw == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(a.raw)
}

// BaseString returns the base-unit digit string.
func (a Amount) BaseString() string {
	if a.raw == nil {
		return "0"
	}
	return a.raw.String()
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.raw == nil || a.raw.Sign() == 0
}

// Cmp compares two amounts by base-unit value.
func (a Amount) Cmp(b Amount) int {
	return a.Raw().Cmp(b.Raw())
}

// ToDecimal converts the amount to decimal.Decimal for display.
func (a Amount) ToDecimal() decimal.Decimal {
	if a.raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(a.raw, -a.decimals)
}

// String returns the human-readable decimal representation.
func (a Amount) String() string {
	return a.ToDecimal().String()
}
