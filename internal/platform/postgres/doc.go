// Package postgres implements the store contracts on top of a PostgreSQL
// database accessed through database/sql with the pgx driver.
package postgres
