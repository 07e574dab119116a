// Package postgres provides the PostgreSQL implementation of the job store
// defined in the internal/store package, together with the embedded goose
// migrations that create its schema. Queries go through database/sql using the
// pgx stdlib driver; pgx's pgtype is used for array columns.
package postgres
