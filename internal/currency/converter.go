// Package currency keeps every persisted monetary value in one canonical
// currency and converts at the edges. Only a single foreign rate is modeled:
// one conversion factor between the canonical currency and the operator's
// display currency.
package currency

import (
	"errors"
	"fmt"
)

var ErrBadRate = errors.New("conversion rate must be positive")

type Converter struct {
	canonical string
	display   string
	// canonical units per one display unit, e.g. 600 XOF per USD.
	rate float64
}

// NewConverter builds a converter from the canonical currency to the selected
// display currency. When display equals canonical the rate is ignored and
// conversion is the identity.
func NewConverter(canonical, display string, rate float64) (*Converter, error) {
	if canonical == "" || display == "" {
		return nil, errors.New("currency codes must be non-empty")
	}
	if canonical != display && rate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadRate, rate)
	}
	return &Converter{canonical: canonical, display: display, rate: rate}, nil
}

func (c *Converter) Canonical() string { return c.canonical }
func (c *Converter) Display() string   { return c.display }

// ToCanonical converts an operator-entered amount (display currency) into the
// canonical currency for persistence.
func (c *Converter) ToCanonical(amount float64) float64 {
	if c.display == c.canonical {
		return amount
	}
	return amount * c.rate
}

// ToDisplay converts a stored canonical amount into the display currency.
// ToCanonical(ToDisplay(x)) == x up to floating-point rounding.
func (c *Converter) ToDisplay(amount float64) float64 {
	if c.display == c.canonical {
		return amount
	}
	return amount / c.rate
}
