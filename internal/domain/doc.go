// Package domain contains the core business entities (users and cards),
// their identifiers, defaults and validation rules, independent of any
// specific store or delivery mechanism.
package domain
