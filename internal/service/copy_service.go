package service

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/promoforge/promoforge/internal/domain"
	"github.com/promoforge/promoforge/pkg/logger"
	"github.com/promoforge/promoforge/pkg/render"
)

// CopyImportService ingests the marketing copy JSON produced by the external
// text-generation collaborator. The payload is pasted or uploaded as-is, so
// extraction is tolerant: a malformed market entry is skipped, not fatal.
type CopyImportService struct {
	logger logger.Logger
}

func NewCopyImportService(logger logger.Logger) *CopyImportService {
	return &CopyImportService{logger: logger}
}

func (s *CopyImportService) ImportCopy(raw []byte) (*domain.CopyImport, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("invalid copy payload: not valid JSON")
	}

	parsed := gjson.ParseBytes(raw)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("invalid copy payload: expected an object keyed by market code")
	}

	result := &domain.CopyImport{
		Copy:         map[string]render.GeneratedCopy{},
		Testimonials: map[string]render.Testimonial{},
	}

	parsed.ForEach(func(key, value gjson.Result) bool {
		marketCode := key.String()
		if render.MarketFor(marketCode).Code == "" {
			result.Skipped = append(result.Skipped, marketCode)
			return true
		}
		if !value.IsObject() {
			result.Skipped = append(result.Skipped, marketCode)
			return true
		}

		copyEntry := render.GeneratedCopy{
			SenderName:    value.Get("sender_name").String(),
			SubjectTitle:  value.Get("subject_title").String(),
			PreheaderText: value.Get("preheader_text").String(),
			Headline:      value.Get("headline").String(),
			Description: render.CopyDescription{
				Intro: value.Get("description.intro").String(),
			},
		}
		for _, bullet := range value.Get("description.bullets").Array() {
			if b := bullet.String(); b != "" {
				copyEntry.Description.Bullets = append(copyEntry.Description.Bullets, b)
			}
		}

		if hasCopyContent(copyEntry) {
			result.Copy[marketCode] = copyEntry
		} else {
			result.Skipped = append(result.Skipped, marketCode)
		}

		if t := value.Get("testimonial"); t.IsObject() {
			result.Testimonials[marketCode] = render.Testimonial{
				Text:             t.Get("text").String(),
				Rating:           t.Get("rating").Float(),
				SatisfactionLine: t.Get("satisfaction_line").String(),
			}
		}

		return true
	})

	s.logger.WithFields(map[string]interface{}{
		"markets": len(result.Copy),
		"skipped": len(result.Skipped),
	}).Info("Imported marketing copy")

	return result, nil
}

func hasCopyContent(c render.GeneratedCopy) bool {
	return c.SenderName != "" || c.SubjectTitle != "" || c.PreheaderText != "" ||
		c.Headline != "" || c.Description.Intro != "" || len(c.Description.Bullets) > 0
}
