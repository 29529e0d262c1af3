// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the user and card services, translating HTTP concerns to business
// operations and every failure into a single JSON error shape.
package api
