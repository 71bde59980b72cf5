package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promoforge/promoforge/pkg/logger"
)

func TestCopyImportService_ImportCopy(t *testing.T) {
	svc := NewCopyImportService(logger.NewTestLogger(t))

	t.Run("extracts per-market copy", func(t *testing.T) {
		raw := []byte(`{
			"de": {
				"sender_name": "Lumina Team",
				"subject_title": "Nur heute: %price%",
				"preheader_text": "Nicht verpassen",
				"headline": "Sommer-Angebot",
				"description": {
					"intro": "Ein tolles Produkt.",
					"bullets": ["Schnell", "Leise"]
				},
				"testimonial": {
					"text": "Bestes Produkt aller Zeiten",
					"rating": 4.8,
					"satisfaction_line": "98% zufriedene Kunden"
				}
			},
			"fr": {
				"headline": "Offre d'ete"
			}
		}`)

		result, err := svc.ImportCopy(raw)
		require.NoError(t, err)

		de := result.Copy["de"]
		assert.Equal(t, "Lumina Team", de.SenderName)
		assert.Equal(t, "Nur heute: %price%", de.SubjectTitle)
		assert.Equal(t, "Ein tolles Produkt.", de.Description.Intro)
		assert.Equal(t, []string{"Schnell", "Leise"}, de.Description.Bullets)

		testimonial := result.Testimonials["de"]
		assert.Equal(t, 4.8, testimonial.Rating)
		assert.Equal(t, "98% zufriedene Kunden", testimonial.SatisfactionLine)

		assert.Equal(t, "Offre d'ete", result.Copy["fr"].Headline)
		assert.Empty(t, result.Skipped)
	})

	t.Run("skips unknown and malformed markets", func(t *testing.T) {
		raw := []byte(`{
			"de": {"headline": "Hallo"},
			"xx": {"headline": "Unknown market"},
			"fr": "not an object",
			"it": {}
		}`)

		result, err := svc.ImportCopy(raw)
		require.NoError(t, err)

		assert.Len(t, result.Copy, 1)
		assert.Contains(t, result.Copy, "de")
		assert.ElementsMatch(t, []string{"xx", "fr", "it"}, result.Skipped)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		_, err := svc.ImportCopy([]byte(`{"de": `))
		assert.ErrorContains(t, err, "not valid JSON")
	})

	t.Run("rejects non-object payload", func(t *testing.T) {
		_, err := svc.ImportCopy([]byte(`["de"]`))
		assert.ErrorContains(t, err, "expected an object")
	})
}
