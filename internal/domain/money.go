package domain

import "strconv"

// Money is an amount in minor currency units (đồng).
type Money int64

// String formats the amount with dot thousand separators, e.g. 3.500.000₫.
func (m Money) String() string {
	s := strconv.FormatInt(int64(m), 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		rem := n % 3
		if rem == 0 {
			rem = 3
		}
		out := s[:rem]
		for i := rem; i < n; i += 3 {
			out += "." + s[i:i+3]
		}
		s = out
	}
	if neg {
		s = "-" + s
	}
	return s + "₫"
}

// Times returns the line total for qty units, treating negative quantities as zero.
func (m Money) Times(qty int) Money {
	if qty <= 0 {
		return 0
	}
	return m * Money(qty)
}
