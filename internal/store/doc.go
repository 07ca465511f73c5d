// Package store defines the persistence contract for cards.
// The interfaces abstract the underlying database so handlers can depend on
// behavior (create, list, update, delete) rather than on a specific engine.
package store
