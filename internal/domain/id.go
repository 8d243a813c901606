package domain

import "github.com/google/uuid"

// NewID returns a fresh identifier for any document entity.
func NewID() string { return uuid.NewString() }
