package kernel

import (
	"fmt"
	"math/bits"

	"dispatch/internal/pkg/errs"
)

// Money is an amount in the smallest denomination of the local currency.
// Floating point is never used for money.
type Money int64

// MaxMoney bounds every price component and every sum of them.
const MaxMoney Money = 1_000_000_000_000_000

func (m Money) Validate() error {
	if m < 0 {
		return errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%d is negative", m))
	}
	return nil
}

// ValidateAmount checks that m is a price component in [0, MaxMoney].
func (m Money) ValidateAmount(param string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m > MaxMoney {
		return errs.NewValueIsOutOfRangeError(param, int64(m), int64(0), int64(MaxMoney))
	}
	return nil
}

// Times returns m * n. Both must be non-negative and the product at most MaxMoney.
func (m Money) Times(n int, param string) (Money, error) {
	if m < 0 || n < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%d * %d has a negative factor", m, n))
	}
	hi, lo := bits.Mul64(uint64(m), uint64(n))
	if hi != 0 || lo > uint64(MaxMoney) {
		return 0, errs.NewValueIsOutOfRangeErrorWithCause(param, fmt.Sprintf("%d * %d", m, n), int64(0), int64(MaxMoney),
			fmt.Errorf("product exceeds %d", MaxMoney))
	}
	return Money(lo), nil
}

// Plus returns m + other. Both must lie in [0, MaxMoney] and so must the sum.
func (m Money) Plus(other Money, param string) (Money, error) {
	if err := m.ValidateAmount(param); err != nil {
		return 0, err
	}
	if err := other.ValidateAmount(param); err != nil {
		return 0, err
	}
	sum := m + other
	if sum > MaxMoney {
		return 0, errs.NewValueIsOutOfRangeErrorWithCause(param, fmt.Sprintf("%d + %d", m, other), int64(0), int64(MaxMoney),
			fmt.Errorf("sum exceeds %d", MaxMoney))
	}
	return sum, nil
}

// BasisPoints expresses a fraction in 1/10000 units: 8000 is 80%.
type BasisPoints int64

const FullBasisPoints BasisPoints = 10000

// BasisPointsFromFraction converts a fraction in [0, 1] to basis points, rounding to the nearest unit.
func BasisPointsFromFraction(f float64) (BasisPoints, error) {
	if f < 0 || f > 1 {
		return 0, errs.NewValueIsOutOfRangeError("fraction", f, 0, 1)
	}
	return BasisPoints(f*float64(FullBasisPoints) + 0.5), nil
}

// Share returns round(m * bp / 10000), halves rounded up. The product is
// computed in 128 bits, so any non-negative m is safe. Non-positive m or bp
// yield 0 and bp above FullBasisPoints is treated as FullBasisPoints.
func (m Money) Share(bp BasisPoints) Money {
	switch {
	case m <= 0 || bp <= 0:
		return 0
	case bp >= FullBasisPoints:
		return m
	}

	hi, lo := bits.Mul64(uint64(m), uint64(bp))
	lo, carry := bits.Add64(lo, uint64(FullBasisPoints)/2, 0)
	hi += carry
	// hi < FullBasisPoints because m < 2^63 and bp < FullBasisPoints
	quo, _ := bits.Div64(hi, lo, uint64(FullBasisPoints))
	return Money(quo)
}
