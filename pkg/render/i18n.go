package render

// Localized string keys exposed to templates as {{t.<key>}} tokens and used
// by the renderer itself for the price badge, the testimonial rating line
// and the plain-text fallback.
const (
	KeyAmazingPrice     = "amazing_price"
	KeyAverageRating    = "average_rating"
	KeyMoreAboutProduct = "more_about_product"
	KeyUnsubscribe      = "unsubscribe"
	KeyViewInBrowser    = "view_in_browser"
)

// localizedStrings maps market code to its string set. Missing markets
// resolve to an empty set; the renderer leaves unknown {{t.*}} tokens
// untouched in that case.
var localizedStrings = map[string]map[string]string{
	"en": {
		KeyAmazingPrice:     "Amazing price",
		KeyAverageRating:    "Average rating: {rating}/5",
		KeyMoreAboutProduct: "More about the product:",
		KeyUnsubscribe:      "Unsubscribe",
		KeyViewInBrowser:    "View in browser",
	},
	"de": {
		KeyAmazingPrice:     "Unglaublicher Preis",
		KeyAverageRating:    "Durchschnittliche Bewertung: {rating}/5",
		KeyMoreAboutProduct: "Mehr über das Produkt:",
		KeyUnsubscribe:      "Abmelden",
		KeyViewInBrowser:    "Im Browser ansehen",
	},
	"fr": {
		KeyAmazingPrice:     "Prix incroyable",
		KeyAverageRating:    "Note moyenne : {rating}/5",
		KeyMoreAboutProduct: "En savoir plus sur le produit :",
		KeyUnsubscribe:      "Se désabonner",
		KeyViewInBrowser:    "Voir dans le navigateur",
	},
	"es": {
		KeyAmazingPrice:     "Precio increíble",
		KeyAverageRating:    "Valoración media: {rating}/5",
		KeyMoreAboutProduct: "Más sobre el producto:",
		KeyUnsubscribe:      "Darse de baja",
		KeyViewInBrowser:    "Ver en el navegador",
	},
	"it": {
		KeyAmazingPrice:     "Prezzo incredibile",
		KeyAverageRating:    "Valutazione media: {rating}/5",
		KeyMoreAboutProduct: "Maggiori informazioni sul prodotto:",
		KeyUnsubscribe:      "Annulla iscrizione",
		KeyViewInBrowser:    "Visualizza nel browser",
	},
	"pl": {
		KeyAmazingPrice:     "Niesamowita cena",
		KeyAverageRating:    "Średnia ocena: {rating}/5",
		KeyMoreAboutProduct: "Więcej o produkcie:",
		KeyUnsubscribe:      "Wypisz się",
		KeyViewInBrowser:    "Zobacz w przeglądarce",
	},
	"cs": {
		KeyAmazingPrice:     "Úžasná cena",
		KeyAverageRating:    "Průměrné hodnocení: {rating}/5",
		KeyMoreAboutProduct: "Více o produktu:",
		KeyUnsubscribe:      "Odhlásit odběr",
		KeyViewInBrowser:    "Zobrazit v prohlížeči",
	},
	"sk": {
		KeyAmazingPrice:     "Úžasná cena",
		KeyAverageRating:    "Priemerné hodnotenie: {rating}/5",
		KeyMoreAboutProduct: "Viac o produkte:",
		KeyUnsubscribe:      "Odhlásiť odber",
		KeyViewInBrowser:    "Zobraziť v prehliadači",
	},
}

// StringsFor returns the localized string set for a market code. A missing
// market yields an empty set, not an error.
func StringsFor(code string) map[string]string {
	if set, ok := localizedStrings[code]; ok {
		return set
	}
	return map[string]string{}
}
