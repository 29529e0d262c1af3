// Package service contains the application use cases for users and cards.
// Services coordinate the store interfaces, the password hasher and the token
// codec, and report failures as *apperr.Error values so the API layer can
// render them without further classification.
package service
