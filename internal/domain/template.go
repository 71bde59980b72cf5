package domain

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/promoforge/promoforge/pkg/render"
)

//go:generate mockgen -destination mocks/mock_template_service.go -package mocks github.com/promoforge/promoforge/internal/domain TemplateService
//go:generate mockgen -destination mocks/mock_template_repository.go -package mocks github.com/promoforge/promoforge/internal/domain TemplateRepository

// Template is the persisted library form of an email template. Templates
// are immutable once created: updates write a new version and every version
// stays addressable by (id, version).
type Template struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Version            int64      `json:"version"`
	RequiredImageCount int        `json:"required_image_count"`
	HTMLSource         string     `json:"html_source"`
	CSSSource          string     `json:"css_source"`
	CreatedBy          string     `json:"created_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
}

func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("invalid template: id is required")
	}
	if len(t.ID) > 64 {
		return fmt.Errorf("invalid template: id length must be between 1 and 64")
	}

	if t.Name == "" {
		return fmt.Errorf("invalid template: name is required")
	}
	if len(t.Name) > 255 {
		return fmt.Errorf("invalid template: name length must be between 1 and 255")
	}

	if t.Version <= 0 {
		return fmt.Errorf("invalid template: version must be positive")
	}

	if t.RequiredImageCount < 0 || t.RequiredImageCount > 20 {
		return fmt.Errorf("invalid template: required_image_count must be between 0 and 20")
	}

	if t.HTMLSource == "" {
		return fmt.Errorf("invalid template: html_source is required")
	}

	return nil
}

// RenderSource strips the library bookkeeping down to the form the
// rendering engine consumes.
func (t *Template) RenderSource() *render.Template {
	return &render.Template{
		ID:                 t.ID,
		Name:               t.Name,
		RequiredImageCount: t.RequiredImageCount,
		HTMLSource:         t.HTMLSource,
		CSSSource:          t.CSSSource,
	}
}

// Request/Response types

type CreateTemplateRequest struct {
	ID                 string `json:"id,omitempty"`
	Name               string `json:"name"`
	RequiredImageCount int    `json:"required_image_count"`
	HTMLSource         string `json:"html_source"`
	CSSSource          string `json:"css_source"`
}

func (r *CreateTemplateRequest) Validate() (*Template, error) {
	if len(r.ID) > 64 {
		return nil, fmt.Errorf("invalid create template request: id length must be between 1 and 64")
	}
	if r.Name == "" {
		return nil, fmt.Errorf("invalid create template request: name is required")
	}
	if len(r.Name) > 255 {
		return nil, fmt.Errorf("invalid create template request: name length must be between 1 and 255")
	}
	if r.RequiredImageCount < 0 || r.RequiredImageCount > 20 {
		return nil, fmt.Errorf("invalid create template request: required_image_count must be between 0 and 20")
	}
	if r.HTMLSource == "" {
		return nil, fmt.Errorf("invalid create template request: html_source is required")
	}

	return &Template{
		ID:                 r.ID,
		Name:               r.Name,
		Version:            1,
		RequiredImageCount: r.RequiredImageCount,
		HTMLSource:         r.HTMLSource,
		CSSSource:          r.CSSSource,
	}, nil
}

type GetTemplatesRequest struct {
	Name string `json:"name,omitempty"`
}

func (r *GetTemplatesRequest) FromURLParams(queryParams url.Values) error {
	r.Name = queryParams.Get("name")

	if len(r.Name) > 255 {
		return fmt.Errorf("invalid get templates request: name length must be between 1 and 255")
	}

	return nil
}

type GetTemplateRequest struct {
	ID      string `json:"id"`
	Version int64  `json:"version,omitempty"`
}

func (r *GetTemplateRequest) FromURLParams(queryParams url.Values) error {
	r.ID = queryParams.Get("id")
	versionStr := queryParams.Get("version")

	if r.ID == "" {
		return fmt.Errorf("invalid get template request: id is required")
	}
	if len(r.ID) > 64 {
		return fmt.Errorf("invalid get template request: id length must be between 1 and 64")
	}

	if versionStr != "" {
		version, err := strconv.ParseInt(versionStr, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid get template request: version must be a valid integer")
		}
		if version < 0 {
			return fmt.Errorf("invalid get template request: version must be zero or positive")
		}
		r.Version = version
	}

	return nil
}

type UpdateTemplateRequest struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	RequiredImageCount int    `json:"required_image_count"`
	HTMLSource         string `json:"html_source"`
	CSSSource          string `json:"css_source"`
}

func (r *UpdateTemplateRequest) Validate() (*Template, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("invalid update template request: id is required")
	}
	if len(r.ID) > 64 {
		return nil, fmt.Errorf("invalid update template request: id length must be between 1 and 64")
	}
	if r.Name == "" {
		return nil, fmt.Errorf("invalid update template request: name is required")
	}
	if len(r.Name) > 255 {
		return nil, fmt.Errorf("invalid update template request: name length must be between 1 and 255")
	}
	if r.RequiredImageCount < 0 || r.RequiredImageCount > 20 {
		return nil, fmt.Errorf("invalid update template request: required_image_count must be between 0 and 20")
	}
	if r.HTMLSource == "" {
		return nil, fmt.Errorf("invalid update template request: html_source is required")
	}

	return &Template{
		ID:                 r.ID,
		Name:               r.Name,
		RequiredImageCount: r.RequiredImageCount,
		HTMLSource:         r.HTMLSource,
		CSSSource:          r.CSSSource,
	}, nil
}

type DeleteTemplateRequest struct {
	ID string `json:"id"`
}

func (r *DeleteTemplateRequest) Validate() (string, error) {
	if r.ID == "" {
		return "", fmt.Errorf("invalid delete template request: id is required")
	}
	if len(r.ID) > 64 {
		return "", fmt.Errorf("invalid delete template request: id length must be between 1 and 64")
	}

	return r.ID, nil
}

// TemplateService provides operations for managing the template library
type TemplateService interface {
	// CreateTemplate creates a new template at version 1
	CreateTemplate(ctx context.Context, template *Template) error

	// GetTemplateByID retrieves a template by ID; version 0 means latest
	GetTemplateByID(ctx context.Context, id string, version int64) (*Template, error)

	// GetTemplates retrieves the latest version of every template
	GetTemplates(ctx context.Context, name string) ([]*Template, error)

	// UpdateTemplate writes a new version of an existing template
	UpdateTemplate(ctx context.Context, template *Template) error

	// DeleteTemplate deletes a template and all its versions
	DeleteTemplate(ctx context.Context, id string) error
}

// TemplateRepository provides database operations for templates
type TemplateRepository interface {
	// CreateTemplate inserts a new template version row
	CreateTemplate(ctx context.Context, template *Template) error

	// GetTemplateByID retrieves a template by ID; version 0 means latest
	GetTemplateByID(ctx context.Context, id string, version int64) (*Template, error)

	// GetTemplateLatestVersion retrieves the latest version number of a template
	GetTemplateLatestVersion(ctx context.Context, id string) (int64, error)

	// GetTemplates retrieves the latest version of every template
	GetTemplates(ctx context.Context, name string) ([]*Template, error)

	// UpdateTemplate inserts a new version row for an existing template
	UpdateTemplate(ctx context.Context, template *Template) error

	// DeleteTemplate deletes all versions of a template
	DeleteTemplate(ctx context.Context, id string) error
}
