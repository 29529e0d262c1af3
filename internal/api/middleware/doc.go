// Package middleware holds the HTTP middleware chain: trace IDs with a
// request-scoped logger, request logging, panic recovery, cookie-based
// authentication and declarative request validation. Rejections are handed
// to an injected ErrorHandler so every error response is rendered in one place.
package middleware

import "net/http"

// ErrorHandler renders err as an HTTP response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
