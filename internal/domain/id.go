package domain

import (
	"encoding/hex"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDLength is the length of an entity identifier: 12 bytes, hex encoded.
const IDLength = 24

// NewID returns a fresh entity identifier. Identifiers use the document store
// ObjectID layout (timestamp, random value, counter) so they sort roughly by
// creation time and are accepted unchanged by either store backend.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a well-formed identifier.
func IsValidID(id string) bool {
	if len(id) != IDLength {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}
