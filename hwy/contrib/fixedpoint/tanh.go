// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fixedpoint

// Raw Q0.31 constants. Each is the nearest int32 to the named real value
// times 2^31.
const (
	expMinusOneEighth = 1895147668 // exp(-1/8)
	oneThird          = 715827883  // 1/3
)

// Raw Q2.29 constants for the Newton-Raphson reciprocal.
const (
	fortyEightOverSeventeen   = 1515870810  // 48/17
	negThirtyTwoOverSeventeen = -1010580540 // -32/17
)

// expBarrel holds exp(-2^e) in Q0.31 for e = -2..4, applied per set bit of
// the input's multiple-of-a-quarter part.
var expBarrel = [...]struct {
	exponent   int
	multiplier int32
}{
	{-2, 1672461947},
	{-1, 1302514674},
	{0, 790015084},
	{1, 290630308},
	{2, 39332535},
	{3, 720401},
	{4, 242},
}

// expOnIntervalBetweenNegativeOneQuarterAnd0Excl evaluates exp(a) for a in
// [-1/4, 0) with a fourth-order Taylor expansion around -1/8.
func expOnIntervalBetweenNegativeOneQuarterAnd0Excl(a FixedPoint) FixedPoint {
	constantTerm := FromRaw(expMinusOneEighth, 0)
	third := FromRaw(oneThird, 0)

	x := a.Add(ConstantPOT(-3, 0))
	x2 := x.Mul(x)
	x3 := x2.Mul(x)
	x4 := x2.Mul(x2)
	x4Over4 := FromRaw(SaturatingRoundingMultiplyByPOT(x4.Raw, -2), 0)
	poly := FromRaw(SaturatingRoundingMultiplyByPOT(x4Over4.Add(x3).Mul(third).Add(x2).Raw, -1), 0)
	return constantTerm.Add(constantTerm.Mul(x.Add(poly)))
}

// ExpOnNegativeValues returns exp(a) in Q0.31 for a <= 0. a may have any
// number of integer bits up to 29. Inputs below -32 return 0.
func ExpOnNegativeValues(a FixedPoint) FixedPoint {
	intBits := a.IntegerBits
	fracBits := a.FractionalBits()

	oneQuarter := ConstantPOT(-2, intBits)
	mask := oneQuarter.Raw - 1
	aModQuarterMinusOneQuarter := FromRaw(a.Raw&mask, intBits).Sub(oneQuarter)

	result := expOnIntervalBetweenNegativeOneQuarterAnd0Excl(aModQuarterMinusOneQuarter.Rescale(0))
	remainder := aModQuarterMinusOneQuarter.Sub(a).Raw

	for _, step := range expBarrel {
		if intBits <= step.exponent {
			continue
		}
		bit := int32(1) << uint(fracBits+step.exponent)
		if remainder&bit != 0 {
			result = result.Mul(FromRaw(step.multiplier, 0))
		}
	}

	if intBits > 5 {
		clamp := -(int32(1) << uint(36-intBits)) // -32.0
		if a.Raw < clamp {
			result = FixedPoint{}
		}
	}

	if a.Raw == 0 {
		result = One(0)
	}
	return result
}

// OneMinusXOverOnePlusXForXIn01 returns (1-a)/(1+a) in Q0.31 for a in [0, 1)
// using three Newton-Raphson iterations on the half denominator.
func OneMinusXOverOnePlusXForXIn01(a FixedPoint) FixedPoint {
	halfDenominator := FromRaw(RoundingHalfSum(a.Raw, One(0).Raw), 0)

	x := FromRaw(fortyEightOverSeventeen, 2).Add(halfDenominator.Mul(FromRaw(negThirtyTwoOverSeventeen, 2)))
	oneF2 := One(2)
	for range 3 {
		halfDenominatorTimesX := halfDenominator.Mul(x)
		oneMinus := oneF2.Sub(halfDenominatorTimesX)
		x = x.Add(x.Mul(oneMinus).Rescale(2))
	}
	return x.Sub(oneF2).Rescale(0)
}

// Tanh returns tanh(a) in Q0.31. a may have up to 28 integer bits.
func Tanh(a FixedPoint) FixedPoint {
	if a.Raw == 0 {
		return FixedPoint{}
	}
	negative := a.Raw < 0
	n := a
	if negative {
		n = a.Neg()
	}
	t := OneMinusXOverOnePlusXForXIn01(ExpOnNegativeValues(n.Neg().ExactMulByPOT(1)))
	if negative {
		return t.Neg()
	}
	return t
}
