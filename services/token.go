package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// manageTokenWindow is the sliding expiry window: fresh tokens and every
// token-authorized edit push the expiry this far out.
const manageTokenWindow = 30 * 24 * time.Hour

// manageTokenBytes gives 256 bits of entropy, hex-encoded to 64 URL-safe chars.
const manageTokenBytes = 32

func generateManageToken() (string, error) {
	b := make([]byte, manageTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
