// Package service orchestrates validated requests against the persistence
// contracts. Create is an idempotent upsert and update merges only the
// fields present in the payload.
package service
