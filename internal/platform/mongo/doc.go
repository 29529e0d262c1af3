// Package mongo implements the store interfaces on MongoDB using the official
// Go driver. Users and cards live in the "users" and "cards" collections; likes
// are an array on the card document maintained with $addToSet and $pull.
package mongo
