// Package locale holds the formatting policy of a ledger: how its dates and
// currency amounts are written, and how to read and print them.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCost    = errors.New("invalid cost")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidPattern = errors.New("invalid date pattern")
)

// Policy describes one locale's way of writing dates and money.
type Policy struct {
	DatePattern        string // e.g. "DD/MM/YYYY"
	ThousandsSeparator string
	DecimalSeparator   string
	CurrencySymbol     string
}

// Default returns the policy of the household ledger: 31/12/2024 and $1.234,56.
func Default() Policy {
	return Policy{
		DatePattern:        "DD/MM/YYYY",
		ThousandsSeparator: ".",
		DecimalSeparator:   ",",
		CurrencySymbol:     "$",
	}
}

// Validate checks that the policy can be used for parsing.
func (p Policy) Validate() error {
	if p.DecimalSeparator == "" {
		return errors.New("decimal separator must not be empty")
	}
	if p.DecimalSeparator == p.ThousandsSeparator {
		return fmt.Errorf("decimal and thousands separators are both %q", p.DecimalSeparator)
	}
	for _, tok := range []string{"DD", "MM", "YY"} {
		if !strings.Contains(p.DatePattern, tok) {
			return fmt.Errorf("%w: %q lacks %s", ErrInvalidPattern, p.DatePattern, tok)
		}
	}
	return nil
}

// ParseCost converts currency text such as "$1.234,56" to a decimal.
// The steps run in a fixed order: currency symbol removed, thousands
// separators removed, decimal separator replaced by ".", whitespace trimmed.
func (p Policy) ParseCost(raw string) (decimal.Decimal, error) {
	s := raw
	if p.CurrencySymbol != "" {
		s = strings.ReplaceAll(s, p.CurrencySymbol, "")
	}
	if p.ThousandsSeparator != "" {
		s = strings.ReplaceAll(s, p.ThousandsSeparator, "")
	}
	if p.DecimalSeparator != "." {
		s = strings.ReplaceAll(s, p.DecimalSeparator, ".")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidCost, raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidCost, raw)
	}
	return d, nil
}

// ParseDate parses raw with the policy's date pattern. Day and month may be
// written with one or two digits.
func (p Policy) ParseDate(raw string) (time.Time, error) {
	layout, err := goLayout(p.DatePattern, false)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(layout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// FormatDate renders t with the date pattern, zero-padded.
func (p Policy) FormatDate(t time.Time) string {
	return t.Format(p.DateLayout())
}

// DateLayout returns the zero-padded time layout of the date pattern, or
// time.DateOnly when the pattern is invalid.
func (p Policy) DateLayout() string {
	layout, err := goLayout(p.DatePattern, true)
	if err != nil {
		return time.DateOnly
	}
	return layout
}

// FormatCost renders d the way the summary prints money: "$1234.56".
func (p Policy) FormatCost(d decimal.Decimal) string {
	return p.CurrencySymbol + d.StringFixed(2)
}

// goLayout converts a pattern like "DD/MM/YYYY" to a time layout. With padded
// false the day and month fields accept one or two digits.
func goLayout(pattern string, padded bool) (string, error) {
	day, month := "2", "1"
	if padded {
		day, month = "02", "01"
	}

	var b strings.Builder
	for i := 0; i < len(pattern); {
		rest := pattern[i:]
		switch {
		case strings.HasPrefix(rest, "YYYY"):
			b.WriteString("2006")
			i += 4
		case strings.HasPrefix(rest, "YY"):
			b.WriteString("06")
			i += 2
		case strings.HasPrefix(rest, "MM"):
			b.WriteString(month)
			i += 2
		case strings.HasPrefix(rest, "DD"):
			b.WriteString(day)
			i += 2
		case rest[0] >= '0' && rest[0] <= '9' || rest[0] >= 'A' && rest[0] <= 'Z' || rest[0] >= 'a' && rest[0] <= 'z':
			return "", fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		default:
			b.WriteByte(rest[0])
			i++
		}
	}
	return b.String(), nil
}
