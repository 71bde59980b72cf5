package domain

import (
	"context"
	"fmt"

	"github.com/asaskevich/govalidator"

	"github.com/promoforge/promoforge/pkg/render"
)

//go:generate mockgen -destination mocks/mock_render_service.go -package mocks github.com/promoforge/promoforge/internal/domain RenderService
//go:generate mockgen -destination mocks/mock_copy_service.go -package mocks github.com/promoforge/promoforge/internal/domain CopyService

// ValidateInputs checks the operator-controlled input bundle before it
// reaches the rendering engine. The engine itself tolerates anything; this
// catches operator mistakes at the API boundary instead.
func ValidateInputs(in *render.Inputs) error {
	if in == nil {
		return fmt.Errorf("invalid inputs: inputs are required")
	}
	if in.BrandKey == "" {
		return fmt.Errorf("invalid inputs: brand_key is required")
	}
	if in.ThemeColor != "" && !govalidator.IsHexcolor(in.ThemeColor) && !govalidator.IsRGBcolor(in.ThemeColor) {
		return fmt.Errorf("invalid inputs: theme_color must be a hex or rgb() color")
	}
	for i, img := range in.Images {
		if img != "" && !govalidator.IsURL(img) {
			return fmt.Errorf("invalid inputs: images[%d] is not a valid URL", i)
		}
	}
	for code, market := range in.Markets {
		if market.ProductURL != "" && !govalidator.IsURL(market.ProductURL) {
			return fmt.Errorf("invalid inputs: markets[%s].product_url is not a valid URL", code)
		}
		if market.Price != nil && *market.Price < 0 {
			return fmt.Errorf("invalid inputs: markets[%s].price must be zero or positive", code)
		}
	}
	return nil
}

type RenderPreviewRequest struct {
	TemplateID string         `json:"template_id"`
	Version    int64          `json:"version,omitempty"`
	MarketCode string         `json:"market_code"`
	Inputs     *render.Inputs `json:"inputs"`
}

func (r *RenderPreviewRequest) Validate() error {
	if r.TemplateID == "" {
		return fmt.Errorf("invalid render preview request: template_id is required")
	}
	if r.MarketCode == "" {
		return fmt.Errorf("invalid render preview request: market_code is required")
	}
	if r.Version < 0 {
		return fmt.Errorf("invalid render preview request: version must be zero or positive")
	}
	if err := ValidateInputs(r.Inputs); err != nil {
		return fmt.Errorf("invalid render preview request: %w", err)
	}
	return nil
}

type RenderCampaignRequest struct {
	TemplateID string         `json:"template_id"`
	Version    int64          `json:"version,omitempty"`
	Markets    []string       `json:"markets"`
	Inputs     *render.Inputs `json:"inputs"`
}

func (r *RenderCampaignRequest) Validate() error {
	if r.TemplateID == "" {
		return fmt.Errorf("invalid render campaign request: template_id is required")
	}
	if len(r.Markets) == 0 {
		return fmt.Errorf("invalid render campaign request: at least one market is required")
	}
	if r.Version < 0 {
		return fmt.Errorf("invalid render campaign request: version must be zero or positive")
	}
	if err := ValidateInputs(r.Inputs); err != nil {
		return fmt.Errorf("invalid render campaign request: %w", err)
	}
	return nil
}

type SendTestRequest struct {
	TemplateID string         `json:"template_id"`
	Version    int64          `json:"version,omitempty"`
	MarketCode string         `json:"market_code"`
	Inputs     *render.Inputs `json:"inputs"`
	To         string         `json:"to"`
}

func (r *SendTestRequest) Validate() error {
	if r.TemplateID == "" {
		return fmt.Errorf("invalid send test request: template_id is required")
	}
	if r.MarketCode == "" {
		return fmt.Errorf("invalid send test request: market_code is required")
	}
	if !govalidator.IsEmail(r.To) {
		return fmt.Errorf("invalid send test request: to is not a valid email")
	}
	if err := ValidateInputs(r.Inputs); err != nil {
		return fmt.Errorf("invalid send test request: %w", err)
	}
	return nil
}

// MarketRender is one market's output inside a campaign render.
type MarketRender struct {
	MarketCode string        `json:"market_code"`
	Result     render.Result `json:"result"`
}

// RenderService orchestrates the rendering engine over the template library
type RenderService interface {
	// RenderPreview renders one market in preview mode
	RenderPreview(ctx context.Context, req *RenderPreviewRequest) (*render.Result, error)

	// RenderCampaign renders every requested market in export mode
	RenderCampaign(ctx context.Context, req *RenderCampaignRequest) ([]MarketRender, error)

	// ExportZip packages a campaign render into a ZIP archive
	ExportZip(ctx context.Context, req *RenderCampaignRequest) ([]byte, error)

	// SendTest emails one rendered market to an operator address
	SendTest(ctx context.Context, req *SendTestRequest) error
}

// CopyService imports externally generated marketing copy
type CopyService interface {
	// ImportCopy extracts per-market copy and testimonials from a raw JSON
	// payload, skipping malformed entries
	ImportCopy(raw []byte) (*CopyImport, error)
}

// CopyImport is the result of a tolerant copy import: whatever per-market
// content could be extracted, plus the markets that were skipped.
type CopyImport struct {
	Copy         map[string]render.GeneratedCopy `json:"copy"`
	Testimonials map[string]render.Testimonial   `json:"testimonials,omitempty"`
	Skipped      []string                        `json:"skipped,omitempty"`
}
