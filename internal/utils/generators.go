package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePurchaseID returns an opaque purchase identifier, e.g. "lotto_3f2a...".
func GeneratePurchaseID() string {
	return "lotto_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
