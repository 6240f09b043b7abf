package utils

import "github.com/google/uuid"

// UUIDGenerator issues identifiers for accepted connections and admin
// requests. Time-ordered v7 identifiers are preferred so log lines sort in
// accept order.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
