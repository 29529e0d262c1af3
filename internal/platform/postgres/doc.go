// Package postgres provides PostgreSQL implementations of the store
// interfaces. Connections go through database/sql with the pgx stdlib driver
// and the schema is managed by goose migrations embedded in the binary.
package postgres
