package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates public recommendation ids.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues version 7 UUIDs, so ids sort by creation time the
// same way recommendation history does.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate recommendation id: %w", err)
	}
	return value.String(), nil
}
