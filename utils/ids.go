package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// RequestID reuses an inbound request id when it is a UUID and mints one otherwise
func RequestID(inbound string) string {
	inbound = strings.TrimSpace(inbound)
	if _, err := uuid.Parse(inbound); err == nil {
		return inbound
	}
	return GenerateID()
}
