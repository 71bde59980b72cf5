package render

import (
	"fmt"
	"strconv"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPrice formats amount for the market's locale and currency. An
// unsupported locale or currency code falls back to the literal
// "<amount> <currencyCode>" concatenation.
func FormatPrice(amount float64, locale, currencyCode string) string {
	fallback := strconv.FormatFloat(amount, 'f', -1, 64)
	if currencyCode != "" {
		fallback += " " + currencyCode
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return fallback
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return fallback
	}
	return message.NewPrinter(tag).Sprint(currency.Symbol(unit.Amount(amount)))
}

// buildPriceDisplay returns the price token fragment: the plain formatted
// price normally, or the badge + oversized number fragment when the
// special-price flag is set.
func buildPriceDisplay(formatted string, special bool, strs map[string]string, pal Palette) string {
	if formatted == "" {
		return ""
	}
	if !special {
		return formatted
	}
	return fmt.Sprintf(
		`<span style="display:inline-block;background-color:%s;border:1px solid %s;border-radius:4px;padding:2px 10px;font-size:13px;color:%s;">%s</span><br /><span style="font-size:42px;line-height:1.2;font-weight:bold;color:%s;">%s</span>`,
		pal.BadgeBackground, pal.BadgeBorder, pal.PrimaryDark,
		strs[KeyAmazingPrice], pal.PrimaryDarker, formatted)
}
