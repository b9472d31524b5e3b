package database

import (
    "context"
    "database/sql"
    _ "embed"
    "strings"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the tables the service needs if they do not
// exist yet. Statements are idempotent so running it on every start
// is safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
    for _, stmt := range strings.Split(schemaSQL, ";") {
        stmt = strings.TrimSpace(stmt)
        if stmt == "" {
            continue
        }
        if _, err := db.ExecContext(ctx, stmt); err != nil {
            return err
        }
    }
    return nil
}
