package calculator

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{1, "One Rupees Only"},
		{9, "Nine Rupees Only"},
		{10, "Ten Rupees Only"},
		{11, "Eleven Rupees Only"},
		{19, "Nineteen Rupees Only"},
		{20, "Twenty Rupees Only"},
		{21, "Twenty One Rupees Only"},
		{99, "Ninety Nine Rupees Only"},
		{100, "One Hundred Rupees Only"},
		{101, "One Hundred One Rupees Only"},
		{110, "One Hundred Ten Rupees Only"},
		{999, "Nine Hundred Ninety Nine Rupees Only"},
		{1000, "One Thousand Rupees Only"},
		{1001, "One Thousand, One Rupees Only"},
		{1500, "One Thousand, Five Hundred Rupees Only"},
		{99999, "Ninety Nine Thousand, Nine Hundred Ninety Nine Rupees Only"},
		{100000, "One Lakh Rupees Only"},
		{100100, "One Lakh, One Hundred Rupees Only"},
		{250000, "Two Lakh, Fifty Thousand Rupees Only"},
		{1001000, "Ten Lakh, One Thousand Rupees Only"},
		{9999999, "Ninety Nine Lakh, Ninety Nine Thousand, Nine Hundred Ninety Nine Rupees Only"},
		{10000000, "One Crore Rupees Only"},
		{10000001, "One Crore, One Rupees Only"},
		{12345678, "One Crore, Twenty Three Lakh, Forty Five Thousand, Six Hundred Seventy Eight Rupees Only"},
		{1234567890, "One Hundred Twenty Three Crore, Forty Five Lakh, Sixty Seven Thousand, Eight Hundred Ninety Rupees Only"},
		{10000000000, "One Thousand Crore Rupees Only"},
		{1500000000000, "One Lakh, Fifty Thousand Crore Rupees Only"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := AmountToWords(tt.amount)
			if err != nil {
				t.Fatalf("AmountToWords(%d) error = %v", tt.amount, err)
			}
			if got != tt.want {
				t.Errorf("AmountToWords(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestAmountToWords_Negative(t *testing.T) {
	_, err := AmountToWords(-1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("AmountToWords(-1) error = %v, want ErrInvalidInput", err)
	}
}

func TestAmountToWords_NoStraySpacesOrEmptyTiers(t *testing.T) {
	amounts := []int64{1, 7, 40, 305, 4000, 50005, 700000, 8000090, 60000000, 100001000, math.MaxInt64}
	for _, amount := range amounts {
		got, err := AmountToWords(amount)
		if err != nil {
			t.Fatalf("AmountToWords(%d) error = %v", amount, err)
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("AmountToWords(%d) = %q has leading/trailing whitespace", amount, got)
		}
		if strings.Contains(got, "  ") || strings.Contains(got, ", ,") || strings.Contains(got, " ,") {
			t.Errorf("AmountToWords(%d) = %q has an empty segment", amount, got)
		}
		if strings.Contains(got, "Zero") {
			t.Errorf("AmountToWords(%d) = %q mentions a zero tier", amount, got)
		}
		if !strings.HasSuffix(got, " Rupees Only") {
			t.Errorf("AmountToWords(%d) = %q, want Rupees Only suffix", amount, got)
		}
	}
}

func TestAmountToWords_LengthGrowsWithTiers(t *testing.T) {
	// Each step adds one more non-zero tier on top of the previous amount.
	steps := [][]int64{
		{7, 7 + 3*thousand, 7 + 3*thousand + 2*lakh, 7 + 3*thousand + 2*lakh + 1*crore},
		{999, 99*thousand + 999, 99*lakh + 99*thousand + 999, 999*crore + 99*lakh + 99*thousand + 999},
		{12, 12 + 40*thousand, 12 + 40*thousand + 11*lakh, 12 + 40*thousand + 11*lakh + 5000*crore},
	}

	for _, amounts := range steps {
		prev := -1
		for _, amount := range amounts {
			got, err := AmountToWords(amount)
			if err != nil {
				t.Fatalf("AmountToWords(%d) error = %v", amount, err)
			}
			if len(got) < prev {
				t.Errorf("AmountToWords(%d) = %q is shorter than the previous tier (%d < %d)", amount, got, len(got), prev)
			}
			prev = len(got)
		}
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	r := NewRenderer()
	for _, amount := range []int64{0, 42, 1500, 12345678} {
		first, _ := r.AmountToWords(amount)
		second, _ := r.AmountToWords(amount)
		viaDefault, _ := AmountToWords(amount)
		if first != second || first != viaDefault {
			t.Errorf("AmountToWords(%d) not deterministic: %q, %q, %q", amount, first, second, viaDefault)
		}
	}
}

func TestTotalToWords(t *testing.T) {
	got, err := TotalToWords(1500.99)
	if err != nil {
		t.Fatalf("TotalToWords(1500.99) error = %v", err)
	}
	if want := "One Thousand, Five Hundred Rupees Only"; got != want {
		t.Errorf("TotalToWords(1500.99) = %q, want %q", got, want)
	}

	tests := []struct {
		name   string
		total  float64
		reason string
	}{
		{"NaN", math.NaN(), "out of range"},
		{"positive infinity", math.Inf(1), "out of range"},
		{"negative infinity", math.Inf(-1), "out of range"},
		{"above int64", 1e30, "out of range"},
		{"exactly 2^63", math.MaxInt64, "out of range"},
		{"negative", -50, "cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TotalToWords(tt.total)
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("TotalToWords(%v) error = %v, want *InputError", tt.total, err)
			}
			if inputErr.Reason != tt.reason {
				t.Errorf("TotalToWords(%v) reason = %q, want %q", tt.total, inputErr.Reason, tt.reason)
			}
		})
	}
}
