// Package postgres provides the PostgreSQL implementation of store.CardStore.
// It uses database/sql with the pgx stdlib driver, maps pgconn error codes to
// store errors, and embeds the goose migrations for the cards schema.
package postgres
