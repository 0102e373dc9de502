// Package mocks provides in-memory implementations of the store contracts
// for use in tests.
package mocks
