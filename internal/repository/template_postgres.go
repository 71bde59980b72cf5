package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/promoforge/promoforge/internal/domain"
)

type templateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new PostgreSQL template repository
func NewTemplateRepository(db *sql.DB) domain.TemplateRepository {
	return &templateRepository{
		db: db,
	}
}

func (r *templateRepository) CreateTemplate(ctx context.Context, template *domain.Template) error {
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	// Ensure version is at least 1 for creation
	if template.Version == 0 {
		template.Version = 1
	}

	query := `
		INSERT INTO templates (
			id,
			name,
			version,
			required_image_count,
			html_source,
			css_source,
			created_by,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		template.ID,
		template.Name,
		template.Version,
		template.RequiredImageCount,
		template.HTMLSource,
		template.CSSSource,
		nullString(template.CreatedBy),
		template.CreatedAt,
		template.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (r *templateRepository) GetTemplateByID(ctx context.Context, id string, version int64) (*domain.Template, error) {
	var query string
	var args []interface{}

	if version > 0 {
		query = `
			SELECT
				id,
				name,
				version,
				required_image_count,
				html_source,
				css_source,
				created_by,
				created_at,
				updated_at
			FROM templates
			WHERE id = $1 AND version = $2 AND deleted_at IS NULL
		`
		args = []interface{}{id, version}
	} else {
		query = `
			SELECT
				id,
				name,
				version,
				required_image_count,
				html_source,
				css_source,
				created_by,
				created_at,
				updated_at
			FROM templates
			WHERE id = $1 AND deleted_at IS NULL
			ORDER BY version DESC
			LIMIT 1
		`
		args = []interface{}{id}
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	template, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTemplateNotFound{Message: "template not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return template, nil
}

func (r *templateRepository) GetTemplateLatestVersion(ctx context.Context, id string) (int64, error) {
	query := `
		SELECT MAX(version)
		FROM templates
		WHERE id = $1 AND deleted_at IS NULL
	`

	var version sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&version)
	if err == sql.ErrNoRows {
		return 0, &domain.ErrTemplateNotFound{Message: "template not found"}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get template latest version: %w", err)
	}
	if !version.Valid {
		return 0, &domain.ErrTemplateNotFound{Message: "template not found"}
	}

	return version.Int64, nil
}

func (r *templateRepository) GetTemplates(ctx context.Context, name string) ([]*domain.Template, error) {
	// Get only the latest version of each template
	latestVersionsCTE := `
		WITH latest_versions AS (
			SELECT id, MAX(version) as max_version
			FROM templates
			WHERE deleted_at IS NULL
			GROUP BY id
		)
	`

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	selectBuilder := psql.Select(
		"t.id",
		"t.name",
		"t.version",
		"t.required_image_count",
		"t.html_source",
		"t.css_source",
		"t.created_by",
		"t.created_at",
		"t.updated_at",
	).Prefix(latestVersionsCTE).
		From("templates t").
		Join("latest_versions lv ON t.id = lv.id AND t.version = lv.max_version").
		Where(sq.Eq{"t.deleted_at": nil}).
		OrderBy("t.updated_at DESC")

	if name != "" {
		selectBuilder = selectBuilder.Where(sq.ILike{"t.name": "%" + name + "%"})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}

	return templates, nil
}

func (r *templateRepository) UpdateTemplate(ctx context.Context, template *domain.Template) error {
	latestVersion, err := r.GetTemplateLatestVersion(ctx, template.ID)
	if err != nil {
		return fmt.Errorf("failed to get template latest version: %w", err)
	}

	// Templates are immutable: updating writes a new version row
	template.Version = latestVersion + 1
	now := time.Now().UTC()
	if template.CreatedAt.IsZero() {
		template.CreatedAt = now
	}
	template.UpdatedAt = now

	query := `
		INSERT INTO templates (
			id,
			name,
			version,
			required_image_count,
			html_source,
			css_source,
			created_by,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.ExecContext(ctx, query,
		template.ID,
		template.Name,
		template.Version,
		template.RequiredImageCount,
		template.HTMLSource,
		template.CSSSource,
		nullString(template.CreatedBy),
		template.CreatedAt,
		template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	return nil
}

func (r *templateRepository) DeleteTemplate(ctx context.Context, id string) error {
	// Soft delete every version
	query := `UPDATE templates SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return &domain.ErrTemplateNotFound{Message: "template not found"}
	}

	return nil
}

// scanTemplate scans a template from a database row
func scanTemplate(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.Template, error) {
	var (
		template  domain.Template
		createdBy sql.NullString
	)

	err := scanner.Scan(
		&template.ID,
		&template.Name,
		&template.Version,
		&template.RequiredImageCount,
		&template.HTMLSource,
		&template.CSSSource,
		&createdBy,
		&template.CreatedAt,
		&template.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if createdBy.Valid {
		template.CreatedBy = createdBy.String
	}

	return &template, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
