package render

// SourceMarket is the distinguished market whose copy the operator authors
// directly; every other market's copy is generated or translated from it.
const SourceMarket = "en"

// PlaceholderImageURL fills empty image slots in preview mode only.
const PlaceholderImageURL = "https://cdn.promoforge.io/assets/placeholder-600x400.png"

// MarketProfile describes one country/locale variant of a campaign.
type MarketProfile struct {
	Code         string `json:"code"`
	DisplayName  string `json:"display_name"`
	Locale       string `json:"locale"`
	CurrencyCode string `json:"currency_code"`
}

// Brand is a reference record resolved by brand key.
type Brand struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	LogoURL    string `json:"logo_url"`
	ThemeColor string `json:"theme_color"` // default when the operator picks none
}

// Markets is the static set of supported markets. Reference data, never
// mutated at runtime.
var Markets = map[string]MarketProfile{
	"en": {Code: "en", DisplayName: "United States", Locale: "en-US", CurrencyCode: "USD"},
	"de": {Code: "de", DisplayName: "Deutschland", Locale: "de-DE", CurrencyCode: "EUR"},
	"fr": {Code: "fr", DisplayName: "France", Locale: "fr-FR", CurrencyCode: "EUR"},
	"es": {Code: "es", DisplayName: "España", Locale: "es-ES", CurrencyCode: "EUR"},
	"it": {Code: "it", DisplayName: "Italia", Locale: "it-IT", CurrencyCode: "EUR"},
	"pl": {Code: "pl", DisplayName: "Polska", Locale: "pl-PL", CurrencyCode: "PLN"},
	"cs": {Code: "cs", DisplayName: "Česko", Locale: "cs-CZ", CurrencyCode: "CZK"},
	"sk": {Code: "sk", DisplayName: "Slovensko", Locale: "sk-SK", CurrencyCode: "EUR"},
}

// Brands is the static brand table.
var Brands = map[string]Brand{
	"lumina": {
		Key:        "lumina",
		Name:       "Lumina",
		LogoURL:    "https://cdn.promoforge.io/brands/lumina/logo.png",
		ThemeColor: "#e9530e",
	},
	"verdant": {
		Key:        "verdant",
		Name:       "Verdant",
		LogoURL:    "https://cdn.promoforge.io/brands/verdant/logo.png",
		ThemeColor: "#19a981",
	},
	"cobalt": {
		Key:        "cobalt",
		Name:       "Cobalt Supply Co.",
		LogoURL:    "https://cdn.promoforge.io/brands/cobalt/logo.png",
		ThemeColor: "#1b66e9",
	},
}

// MarketFor resolves a market profile; the zero profile is returned for an
// unknown code, the renderer tolerates it.
func MarketFor(code string) MarketProfile {
	return Markets[code]
}

// BrandFor resolves a brand record by key; unknown keys yield the zero
// Brand.
func BrandFor(key string) Brand {
	return Brands[key]
}
