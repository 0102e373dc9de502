// Package api provides the HTTP handlers for the hero API, the request
// shapes with their declared constraints, and the single point where
// internal failures are normalized into the client-facing error contract.
package api
