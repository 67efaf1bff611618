package livefolio

import "fmt"

type Percent float64

// Share returns how much of whole part is, 0 if whole is zero.
func Share(part, whole Money) Percent {
	if whole.IsZero() {
		return 0
	}
	return Percent(part.Decimal().Div(whole.Decimal()).Shift(2).InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
