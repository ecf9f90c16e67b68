package scoring

import (
	"errors"
	"fmt"
	"math"
)

// Fraction is the exact weight of one testcase relative to all testcases
// of a problem. Den is always positive.
type Fraction struct {
	Num int64 `json:"numerator"`
	Den int64 `json:"denominator"`
}

// WeightInput carries the weight declaration of a testcase as supplied by
// an administrator. Either the flat percentage, the explicit fraction, or
// neither may be set.
type WeightInput struct {
	ScoreWeight            *int64
	ScoreWeightNumerator   *int64
	ScoreWeightDenominator *int64
}

// Canonicalize resolves a weight declaration into its exact fraction
// form. It is total: every input shape maps to a fraction with a
// positive denominator.
func Canonicalize(in WeightInput) Fraction {
	if in.ScoreWeightNumerator != nil && in.ScoreWeightDenominator != nil {
		if *in.ScoreWeightDenominator > 0 {
			return Fraction{Num: *in.ScoreWeightNumerator, Den: *in.ScoreWeightDenominator}
		}
		return fallbackPercentFraction(*in.ScoreWeightNumerator)
	}
	if in.ScoreWeight != nil {
		return Fraction{Num: *in.ScoreWeight, Den: 100}
	}
	return Fraction{Num: 0, Den: 1}
}

// fallbackPercentFraction handles a fraction input whose denominator is
// not positive. The observed behavior of the platform is to reinterpret
// the numerator as a flat percentage instead of rejecting the input.
// Possibly a latent bug rather than intent; kept here in one place so a
// future correction does not touch call sites.
func fallbackPercentFraction(numerator int64) Fraction {
	return Fraction{Num: numerator, Den: 100}
}

// Percent is the rounded integer percentage equivalent of the fraction,
// used for storage and for submission-level scoring. Rounding happens
// only here; all other fraction arithmetic stays exact.
func (f Fraction) Percent() int {
	return int(math.Round(float64(f.Num) / float64(f.Den) * 100))
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// EqualDistribution assigns each of k testcases the exact fraction 1/k.
// The fractions sum to exactly one.
func EqualDistribution(k int) []Fraction {
	if k <= 0 {
		return nil
	}
	fracs := make([]Fraction, k)
	for i := range fracs {
		fracs[i] = Fraction{Num: 1, Den: int64(k)}
	}
	return fracs
}

// ErrWeightOverflow reports that manually assigned weights leave no room
// for the remaining testcases.
var ErrWeightOverflow = errors.New("manual testcase weights meet or exceed the total")

// DistributeRemaining splits the weight left over after the manually
// weighted testcases evenly among the rest. total is the full testcase
// count including the manual ones. The returned fractions sum to exactly
// one: manual fractions are kept verbatim and the remainder is computed
// over the least common multiple of their denominators.
func DistributeRemaining(total int, manual []Fraction) ([]Fraction, error) {
	if len(manual) == 0 {
		return EqualDistribution(total), nil
	}

	lcmDen := int64(1)
	for _, f := range manual {
		lcmDen = lcm(lcmDen, f.Den)
	}
	sumNum := int64(0)
	for _, f := range manual {
		sumNum += f.Num * (lcmDen / f.Den)
	}

	remainingNum := lcmDen - sumNum
	remainingCount := total - len(manual)
	if remainingNum <= 0 || remainingCount <= 0 {
		return nil, ErrWeightOverflow
	}

	fracs := make([]Fraction, 0, total)
	fracs = append(fracs, manual...)
	equalDen := lcmDen * int64(remainingCount)
	for i := 0; i < remainingCount; i++ {
		fracs = append(fracs, Fraction{Num: remainingNum, Den: equalDen})
	}
	return fracs, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int64) int64 {
	return a / gcd(a, b) * b
}
