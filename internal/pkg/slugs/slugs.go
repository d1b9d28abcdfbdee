// Package slugs derives URL-safe identifiers from display names.
package slugs

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// DefaultMaxLength caps generated slugs.
const DefaultMaxLength = 120

// Strategy turns names into unique slugs. Collisions get a numeric suffix:
// "blue-shirt", "blue-shirt-1", "blue-shirt-2".
type Strategy struct {
	MaxLength int
	Fallback  string
}

func New(fallback string) Strategy {
	return Strategy{MaxLength: DefaultMaxLength, Fallback: fallback}
}

// Base returns the slug for name before collision handling.
func (s Strategy) Base(name string) string {
	base := slug.Make(name)
	if s.MaxLength > 0 && len(base) > s.MaxLength {
		base = strings.TrimRight(base[:s.MaxLength], "-")
	}
	if base == "" {
		return s.Fallback
	}
	return base
}

// Pattern matches base and any suffixed variant of it.
func (s Strategy) Pattern(base string) string {
	return "^" + regexp.QuoteMeta(base) + `(-\d+)?$`
}

// Unique picks the first free slug for base given the slugs already taken.
func (s Strategy) Unique(base string, taken []string) string {
	used := false
	highest := 0
	prefix := base + "-"
	for _, t := range taken {
		if t == base {
			used = true
			continue
		}
		if !strings.HasPrefix(t, prefix) {
			continue
		}
		if n, err := strconv.Atoi(t[len(prefix):]); err == nil && n > 0 {
			used = true
			if n > highest {
				highest = n
			}
		}
	}
	if !used {
		return base
	}
	return prefix + strconv.Itoa(highest+1)
}
