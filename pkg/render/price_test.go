package render

import (
	"strings"
	"testing"
)

func TestFormatPrice(t *testing.T) {
	got := FormatPrice(49.99, "en-US", "USD")
	if !strings.Contains(got, "49.99") {
		t.Errorf("expected formatted amount in %q", got)
	}
	if got == "49.99 USD" {
		t.Errorf("expected locale-aware formatting, got the fallback %q", got)
	}
}

func TestFormatPriceFallback(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		currency string
		want     string
	}{
		{name: "unsupported currency", locale: "en-US", currency: "ZZZ", want: "19.99 ZZZ"},
		{name: "malformed locale", locale: "not a locale", currency: "ZZZ", want: "19.99 ZZZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(19.99, tt.locale, tt.currency); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatPriceWholeAmount(t *testing.T) {
	if got := FormatPrice(30, "bad locale", "ZZZ"); got != "30 ZZZ" {
		t.Errorf("expected %q, got %q", "30 ZZZ", got)
	}
}
