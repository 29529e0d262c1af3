// Package store defines the persistence contracts for users and cards.
// Implementations live under internal/platform; business rules depend only on
// these interfaces and the sentinel errors defined here.
package store
