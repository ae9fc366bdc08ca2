package helpers

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// GravatarURL derives the deterministic default avatar for an email address.
// Gravatar hashes the trimmed, lowercased address; unknown addresses fall
// back to a generated "retro" image rated pg.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=250&r=pg&d=retro"
}
