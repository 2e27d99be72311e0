// Package uuid wraps UUID generation for database primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a time-ordered UUIDv7 string. UUIDv7 keys keep insert
// order roughly monotonic, which matters for the catalog's recency sort
// and for index locality. Falls back to UUIDv4 if the system clock or
// entropy source misbehaves.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid reports whether s is a well-formed UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
