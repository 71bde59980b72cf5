package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promoforge/promoforge/pkg/render"
)

func validInputs() *render.Inputs {
	price := 19.99
	return &render.Inputs{
		BrandKey:   "lumina",
		ThemeColor: "#19a981",
		Images:     []string{"https://cdn.example.com/hero.jpg"},
		Markets: map[string]render.MarketInput{
			"de": {Price: &price, ProductURL: "https://shop.example.de/p/1"},
		},
	}
}

func TestValidateInputs(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateInputs(validInputs()))
	})

	t.Run("nil inputs", func(t *testing.T) {
		assert.ErrorContains(t, ValidateInputs(nil), "inputs are required")
	})

	t.Run("missing brand", func(t *testing.T) {
		in := validInputs()
		in.BrandKey = ""
		assert.ErrorContains(t, ValidateInputs(in), "brand_key is required")
	})

	t.Run("bad theme color", func(t *testing.T) {
		in := validInputs()
		in.ThemeColor = "tomato"
		assert.ErrorContains(t, ValidateInputs(in), "theme_color")
	})

	t.Run("empty theme color falls back to brand", func(t *testing.T) {
		in := validInputs()
		in.ThemeColor = ""
		assert.NoError(t, ValidateInputs(in))
	})

	t.Run("bad image URL", func(t *testing.T) {
		in := validInputs()
		in.Images = []string{"not a url with spaces"}
		assert.ErrorContains(t, ValidateInputs(in), "images[0]")
	})

	t.Run("negative price", func(t *testing.T) {
		in := validInputs()
		bad := -1.0
		in.Markets["de"] = render.MarketInput{Price: &bad}
		assert.ErrorContains(t, ValidateInputs(in), "price must be zero or positive")
	})
}

func TestRenderPreviewRequestValidate(t *testing.T) {
	valid := func() *RenderPreviewRequest {
		return &RenderPreviewRequest{
			TemplateID: "tpl-1",
			MarketCode: "de",
			Inputs:     validInputs(),
		}
	}

	require.NoError(t, valid().Validate())

	req := valid()
	req.TemplateID = ""
	assert.ErrorContains(t, req.Validate(), "template_id is required")

	req = valid()
	req.MarketCode = ""
	assert.ErrorContains(t, req.Validate(), "market_code is required")

	req = valid()
	req.Inputs = nil
	assert.ErrorContains(t, req.Validate(), "inputs are required")
}

func TestRenderCampaignRequestValidate(t *testing.T) {
	valid := func() *RenderCampaignRequest {
		return &RenderCampaignRequest{
			TemplateID: "tpl-1",
			Markets:    []string{"en", "de", "fr"},
			Inputs:     validInputs(),
		}
	}

	require.NoError(t, valid().Validate())

	req := valid()
	req.Markets = nil
	assert.ErrorContains(t, req.Validate(), "at least one market is required")
}

func TestSendTestRequestValidate(t *testing.T) {
	valid := func() *SendTestRequest {
		return &SendTestRequest{
			TemplateID: "tpl-1",
			MarketCode: "de",
			Inputs:     validInputs(),
			To:         "operator@example.com",
		}
	}

	require.NoError(t, valid().Validate())

	req := valid()
	req.To = "not-an-email"
	assert.ErrorContains(t, req.Validate(), "to is not a valid email")
}
