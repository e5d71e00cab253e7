package utils

import "github.com/google/uuid"

// UUIDGenerator issues the ids of every stored entity in both backends.
// Version 7 ids sort by creation time, which keeps SQL indexes append-only.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7. If the clock source fails it falls back to
// a random v4 id, which is still unique.
func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsValidID reports whether s is a canonical UUID as produced by
// [UUIDGenerator]. Ids arriving in URLs are checked with it before they
// reach storage.
func IsValidID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
