// Package utils provides small helpers shared by the services: identifier
// generation and the wall clock.
package utils

import "github.com/google/uuid"

//go:generate mockgen -source=uuid.go -destination=../mock/id_generator_mock.go -package=mock

// IDGenerator produces opaque, stable record identifiers.
type IDGenerator interface {
	Generate() string
}

type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7 string, falling back to a random
// v4 when the v7 source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
