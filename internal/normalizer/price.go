package normalizer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Package-level compiled regex patterns for performance
var (
	fromPrefixRegex   = regexp.MustCompile(`(?i)^\s*from\s*:?\s*`)
	currencyCodeRegex = regexp.MustCompile(`(?i)\b(?:USD|AUD|GBP|EUR|CAD)\b`)
	priceRegex        = regexp.MustCompile(`(-\s*)?([$£€])?\s*(-?\d[\d,]*(?:\.\d+)?)`)
)

// Plausible prices lie strictly between these bounds.
var (
	minPlausiblePrice = decimal.Zero
	maxPlausiblePrice = decimal.NewFromInt(50000)
	centsThreshold    = decimal.NewFromInt(100)
	centsDivisor      = decimal.NewFromInt(100)
)

// NormalizePrice turns an arbitrary scraped price string into a
// currency-prefixed display value such as "$29.99".
//
// Ranges collapse to their lower bound, a leading "from" and currency codes are
// dropped, and thousands separators removed. A missing symbol becomes "$".
// The second return value is false when no plausible price could be found.
func NormalizePrice(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if idx := strings.Index(s, " - "); idx >= 0 {
		s = s[:idx]
	}
	s = fromPrefixRegex.ReplaceAllString(s, "")
	s = currencyCodeRegex.ReplaceAllString(s, "")

	match := priceRegex.FindStringSubmatch(s)
	if match == nil {
		return "", false
	}

	symbol := match[2]
	if symbol == "" {
		symbol = "$"
	}
	amount := strings.ReplaceAll(match[3], ",", "")

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return "", false
	}
	// a sign in front of the symbol ("-$5") still makes the amount negative
	if match[1] != "" {
		value = value.Neg()
	}
	if !value.GreaterThan(minPlausiblePrice) || !value.LessThan(maxPlausiblePrice) {
		return "", false
	}

	return symbol + amount, true
}

// CentsAwarePrice interprets a bare numeric price from a storefront-platform
// feed. Integers above 100 written without a decimal point are minor units
// (cents); anything else is already in whole currency units.
// Returns false when raw is not a bare number or is not positive.
func CentsAwarePrice(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	value, err := decimal.NewFromString(s)
	if err != nil || !value.IsPositive() {
		return "", false
	}

	if value.IsInteger() && value.GreaterThan(centsThreshold) && !strings.Contains(s, ".") {
		value = value.Div(centsDivisor)
	}

	return "$" + value.StringFixed(2), true
}

// IsBareNumber reports whether raw is a plain decimal number with no
// currency decoration.
func IsBareNumber(raw string) bool {
	_, err := decimal.NewFromString(strings.TrimSpace(raw))
	return err == nil
}
