package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// trackingAlphabet excludes lowercase so IDs read the same however the
// customer types them. 36^10 possible IDs makes collisions negligible at
// any plausible order volume.
const (
	trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingLength   = 10
)

// GenerateTrackingID returns a short, user-shareable order identifier
// sampled uniformly from a cryptographically random source. It encodes
// nothing about the order and is safe to display.
func GenerateTrackingID() (string, error) {
	id := make([]byte, trackingLength)
	max := big.NewInt(int64(len(trackingAlphabet)))
	for i := range id {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate tracking ID: %w", err)
		}
		id[i] = trackingAlphabet[n.Int64()]
	}
	return string(id), nil
}
