package uid

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateGameID returns a random, URL-safe game ID.
func GenerateGameID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate game ID: %w", err)
	}
	return id.String(), nil
}
