package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promoforge/promoforge/internal/domain"
	"github.com/promoforge/promoforge/internal/repository/testutil"
)

func testTemplate() *domain.Template {
	return &domain.Template{
		ID:                 "tpl-1",
		Name:               "Summer promo",
		Version:            1,
		RequiredImageCount: 2,
		HTMLSource:         "<table>{{headline}}</table>",
		CSSSource:          "a { color: #e9530e; }",
		CreatedBy:          "operator-1",
	}
}

func templateRows(tpl *domain.Template) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "name", "version", "required_image_count",
		"html_source", "css_source", "created_by", "created_at", "updated_at",
	}).AddRow(
		tpl.ID, tpl.Name, tpl.Version, tpl.RequiredImageCount,
		tpl.HTMLSource, tpl.CSSSource, tpl.CreatedBy, now, now,
	)
}

func TestTemplateRepository_CreateTemplate(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewTemplateRepository(db)
	tpl := testTemplate()
	tpl.Version = 0

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO templates")).
		WithArgs(
			tpl.ID, tpl.Name, int64(1), tpl.RequiredImageCount,
			tpl.HTMLSource, tpl.CSSSource,
			sql.NullString{String: "operator-1", Valid: true},
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateTemplate(context.Background(), tpl)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tpl.Version)
	assert.False(t, tpl.CreatedAt.IsZero())
}

func TestTemplateRepository_GetTemplateByID(t *testing.T) {
	t.Run("latest version", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)
		tpl := testTemplate()
		tpl.Version = 3

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY version DESC")).
			WithArgs("tpl-1").
			WillReturnRows(templateRows(tpl))

		got, err := repo.GetTemplateByID(context.Background(), "tpl-1", 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Version)
		assert.Equal(t, "Summer promo", got.Name)
	})

	t.Run("specific version", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)
		tpl := testTemplate()
		tpl.Version = 2

		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND version = $2")).
			WithArgs("tpl-1", int64(2)).
			WillReturnRows(templateRows(tpl))

		got, err := repo.GetTemplateByID(context.Background(), "tpl-1", 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Version)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM templates")).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetTemplateByID(context.Background(), "missing", 0)
		var notFound *domain.ErrTemplateNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestTemplateRepository_GetTemplateLatestVersion(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(version)")).
			WithArgs("tpl-1").
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(int64(4)))

		version, err := repo.GetTemplateLatestVersion(context.Background(), "tpl-1")
		require.NoError(t, err)
		assert.Equal(t, int64(4), version)
	})

	t.Run("no rows means not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		// MAX over an empty set returns SQL NULL, not ErrNoRows
		mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(version)")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

		_, err := repo.GetTemplateLatestVersion(context.Background(), "missing")
		var notFound *domain.ErrTemplateNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestTemplateRepository_GetTemplates(t *testing.T) {
	t.Run("lists latest versions", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)
		tpl := testTemplate()

		mock.ExpectQuery(regexp.QuoteMeta("WITH latest_versions AS")).
			WillReturnRows(templateRows(tpl))

		templates, err := repo.GetTemplates(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, templates, 1)
		assert.Equal(t, "tpl-1", templates[0].ID)
	})

	t.Run("filters by name", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("t.name ILIKE")).
			WithArgs("%Summer%").
			WillReturnRows(templateRows(testTemplate()))

		templates, err := repo.GetTemplates(context.Background(), "Summer")
		require.NoError(t, err)
		assert.Len(t, templates, 1)
	})
}

func TestTemplateRepository_UpdateTemplate(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewTemplateRepository(db)
	tpl := testTemplate()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(version)")).
		WithArgs("tpl-1").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(int64(2)))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO templates")).
		WithArgs(
			tpl.ID, tpl.Name, int64(3), tpl.RequiredImageCount,
			tpl.HTMLSource, tpl.CSSSource,
			sql.NullString{String: "operator-1", Valid: true},
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateTemplate(context.Background(), tpl)
	require.NoError(t, err)
	assert.Equal(t, int64(3), tpl.Version)
}

func TestTemplateRepository_DeleteTemplate(t *testing.T) {
	t.Run("deletes all versions", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE templates SET deleted_at")).
			WithArgs("tpl-1").
			WillReturnResult(sqlmock.NewResult(0, 3))

		require.NoError(t, repo.DeleteTemplate(context.Background(), "tpl-1"))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE templates SET deleted_at")).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteTemplate(context.Background(), "missing")
		var notFound *domain.ErrTemplateNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}
