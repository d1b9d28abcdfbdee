package listing

import (
	"math"
	"strconv"
	"strings"
)

// PriceRange is an inclusive price filter. Both bounds are always set.
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether price lies within the range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// ParsePriceRange parses the min/max query values. The bounds only apply as a
// pair: when either is missing, unparsable, negative or non-finite, or when
// min exceeds max, ok is false and no price filter is applied.
func ParsePriceRange(minRaw, maxRaw string) (r PriceRange, ok bool) {
	lo, ok := parseBound(minRaw)
	if !ok {
		return PriceRange{}, false
	}
	hi, ok := parseBound(maxRaw)
	if !ok {
		return PriceRange{}, false
	}
	if lo > hi {
		return PriceRange{}, false
	}
	return PriceRange{Min: lo, Max: hi}, true
}

func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
