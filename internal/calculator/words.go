package calculator

import (
	"math"
	"strings"
)

const (
	thousand = 1_000
	lakh     = 100_000
	crore    = 10_000_000

	currencySuffix = " Rupees Only"
)

// numberWords holds the word tables for one numbering convention.
type numberWords struct {
	ones  [10]string
	teens [10]string
	tens  [10]string
}

// Renderer spells out whole rupee amounts in the lakh/crore convention:
// thousand (10^3), lakh (10^5), crore (10^7).
// A Renderer is read-only after construction and safe for concurrent use.
type Renderer struct {
	words *numberWords
}

// NewRenderer builds a Renderer with English words.
func NewRenderer() *Renderer {
	return &Renderer{words: &numberWords{
		ones:  [10]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"},
		teens: [10]string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"},
		tens:  [10]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"},
	}}
}

var defaultRenderer = NewRenderer()

// AmountToWords renders amount with the default Renderer.
func AmountToWords(amount int64) (string, error) {
	return defaultRenderer.AmountToWords(amount)
}

// TotalToWords renders the whole-rupee part of a computed total. NaN,
// infinities and values outside the int64 range are rejected as out of range
// before truncation.
func TotalToWords(total float64) (string, error) {
	if !isFinite(total) || total >= math.MaxInt64 || total <= math.MinInt64 {
		return "", invalid("amount", "out of range")
	}
	return defaultRenderer.AmountToWords(int64(total))
}

// AmountToWords renders amount as words, e.g.
//
//	1500     -> "One Thousand, Five Hundred Rupees Only"
//	12345678 -> "One Crore, Twenty Three Lakh, Forty Five Thousand, Six Hundred Seventy Eight Rupees Only"
//
// Zero-valued tiers are left out. Negative amounts return ErrInvalidInput.
func (r *Renderer) AmountToWords(amount int64) (string, error) {
	if amount < 0 {
		return "", invalid("amount", "cannot be negative")
	}
	if amount == 0 {
		return "Zero" + currencySuffix, nil
	}
	return r.group(amount) + currencySuffix, nil
}

// group renders n > 0 as comma-separated tier segments, most significant first.
// The crore count has no upper tier, so it is grouped again on its own.
func (r *Renderer) group(n int64) string {
	crores := n / crore
	rest := n % crore
	lakhs := rest / lakh
	rest %= lakh
	thousands := rest / thousand
	hundreds := rest % thousand

	segments := make([]string, 0, 4)
	if crores > 0 {
		segments = append(segments, r.group(crores)+" Crore")
	}
	if lakhs > 0 {
		segments = append(segments, r.belowThousand(lakhs)+" Lakh")
	}
	if thousands > 0 {
		segments = append(segments, r.belowThousand(thousands)+" Thousand")
	}
	if hundreds > 0 {
		segments = append(segments, r.belowThousand(hundreds))
	}
	return strings.Join(segments, ", ")
}

// belowThousand renders 1..999.
func (r *Renderer) belowThousand(n int64) string {
	if n < 100 {
		return r.belowHundred(n)
	}
	s := r.words.ones[n/100] + " Hundred"
	if rem := n % 100; rem > 0 {
		s += " " + r.belowHundred(rem)
	}
	return s
}

// belowHundred renders 1..99. Teens are irregular and come from their own table.
func (r *Renderer) belowHundred(n int64) string {
	switch {
	case n < 10:
		return r.words.ones[n]
	case n < 20:
		return r.words.teens[n-10]
	}
	s := r.words.tens[n/10]
	if unit := n % 10; unit > 0 {
		s += " " + r.words.ones[unit]
	}
	return s
}
