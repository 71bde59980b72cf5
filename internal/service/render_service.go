package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/promoforge/promoforge/internal/domain"
	"github.com/promoforge/promoforge/pkg/logger"
	"github.com/promoforge/promoforge/pkg/mailer"
	"github.com/promoforge/promoforge/pkg/render"
	"github.com/promoforge/promoforge/pkg/tracing"
)

// renderConcurrency caps the number of markets rendered in parallel during
// a campaign export.
const renderConcurrency = 4

type RenderService struct {
	templateService domain.TemplateService
	mailer          mailer.Mailer
	logger          logger.Logger
}

func NewRenderService(templateService domain.TemplateService, mailer mailer.Mailer, logger logger.Logger) *RenderService {
	return &RenderService{
		templateService: templateService,
		mailer:          mailer,
		logger:          logger,
	}
}

func (s *RenderService) RenderPreview(ctx context.Context, req *domain.RenderPreviewRequest) (*render.Result, error) {
	ctx, span := tracing.StartSpan(ctx, "RenderService.RenderPreview")
	defer span.End()

	template, err := s.templateService.GetTemplateByID(ctx, req.TemplateID, req.Version)
	if err != nil {
		return nil, err
	}

	result := render.Render(render.Request{
		Template:   template.RenderSource(),
		Inputs:     req.Inputs,
		MarketCode: req.MarketCode,
		Preview:    true,
	})

	return &result, nil
}

func (s *RenderService) RenderCampaign(ctx context.Context, req *domain.RenderCampaignRequest) ([]domain.MarketRender, error) {
	ctx, span := tracing.StartSpan(ctx, "RenderService.RenderCampaign")
	defer span.End()

	template, err := s.templateService.GetTemplateByID(ctx, req.TemplateID, req.Version)
	if err != nil {
		return nil, err
	}

	// Campaign output is final: every image slot must be filled
	if len(req.Inputs.Images) != template.RequiredImageCount {
		return nil, fmt.Errorf("template %s requires %d images, got %d",
			template.ID, template.RequiredImageCount, len(req.Inputs.Images))
	}
	for i, img := range req.Inputs.Images {
		if img == "" {
			return nil, fmt.Errorf("template %s requires %d images, slot %d is empty",
				template.ID, template.RequiredImageCount, i+1)
		}
	}

	for _, marketCode := range req.Markets {
		if render.MarketFor(marketCode).Code == "" {
			return nil, fmt.Errorf("unknown market code: %s", marketCode)
		}
	}

	source := template.RenderSource()
	results := make([]domain.MarketRender, len(req.Markets))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(renderConcurrency)
	for i, marketCode := range req.Markets {
		i, marketCode := i, marketCode
		g.Go(func() error {
			results[i] = domain.MarketRender{
				MarketCode: marketCode,
				Result: render.Render(render.Request{
					Template:   source,
					Inputs:     req.Inputs,
					MarketCode: marketCode,
					Preview:    false,
				}),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *RenderService) ExportZip(ctx context.Context, req *domain.RenderCampaignRequest) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "RenderService.ExportZip")
	defer span.End()

	renders, err := s.RenderCampaign(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, mr := range renders {
		files := map[string]string{
			mr.MarketCode + "/index.html": wrapDocument(mr.Result.HTML, mr.Result.CSS),
			mr.MarketCode + "/style.css":  mr.Result.CSS,
			mr.MarketCode + "/alt.txt":    mr.Result.AltBody,
		}
		for name, content := range files {
			w, err := zw.Create(name)
			if err != nil {
				return nil, fmt.Errorf("failed to create zip entry %s: %w", name, err)
			}
			if _, err := w.Write([]byte(content)); err != nil {
				return nil, fmt.Errorf("failed to write zip entry %s: %w", name, err)
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip archive: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"template_id": req.TemplateID,
		"markets":     len(renders),
	}).Info("Exported campaign archive")

	return buf.Bytes(), nil
}

func (s *RenderService) SendTest(ctx context.Context, req *domain.SendTestRequest) error {
	ctx, span := tracing.StartSpan(ctx, "RenderService.SendTest")
	defer span.End()

	if render.MarketFor(req.MarketCode).Code == "" {
		return fmt.Errorf("unknown market code: %s", req.MarketCode)
	}

	template, err := s.templateService.GetTemplateByID(ctx, req.TemplateID, req.Version)
	if err != nil {
		return err
	}

	result := render.Render(render.Request{
		Template:   template.RenderSource(),
		Inputs:     req.Inputs,
		MarketCode: req.MarketCode,
		Preview:    true,
	})

	marketCopy := req.Inputs.Copy[req.MarketCode]
	senderName := marketCopy.SenderName
	subject := marketCopy.SubjectTitle
	if subject == "" {
		subject = req.Inputs.Subject
	}
	var formattedPrice string
	if marketInput, ok := req.Inputs.Markets[req.MarketCode]; ok && marketInput.Price != nil {
		market := render.MarketFor(req.MarketCode)
		formattedPrice = render.FormatPrice(*marketInput.Price, market.Locale, market.CurrencyCode)
	}
	subject = strings.ReplaceAll(subject, render.PricePlaceholder, formattedPrice)

	if err := s.mailer.SendTestEmail(req.To, senderName, subject, wrapDocument(result.HTML, result.CSS), result.AltBody); err != nil {
		s.logger.WithField("to", req.To).Error(fmt.Sprintf("Failed to send test email: %v", err))
		return fmt.Errorf("failed to send test email: %w", err)
	}

	return nil
}

// wrapDocument turns the rendered fragment and stylesheet into a standalone
// HTML document for export and test sends.
func wrapDocument(html, css string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<style>
%s
</style>
</head>
<body style="margin:0;padding:0;">
%s
</body>
</html>
`, css, html)
}
