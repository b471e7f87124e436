package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewRefNumber produces a human-readable document number such as
// "INV-1A2B3C4D". Uniqueness is backed by the column's unique index.
func NewRefNumber(prefix string) string {
	id := uuid.New().String()
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(id[:8]))
}
