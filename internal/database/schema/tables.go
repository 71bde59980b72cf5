// Package schema defines the database schema for development.
//
// DEVELOPMENT USE ONLY
// This file contains the current database schema and is used for development and testing.
// Before deploying to production, these table definitions should be converted to proper migrations.
package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		id VARCHAR(64) NOT NULL,
		name VARCHAR(255) NOT NULL,
		version BIGINT NOT NULL,
		required_image_count INTEGER NOT NULL DEFAULT 0,
		html_source TEXT NOT NULL,
		css_source TEXT NOT NULL DEFAULT '',
		created_by VARCHAR(255),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		deleted_at TIMESTAMP,
		PRIMARY KEY (id, version)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_templates_updated_at ON templates (updated_at DESC)`,
}
