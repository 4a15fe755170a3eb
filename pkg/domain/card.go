package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// pinSaltLen is the length of the salt prefix stored in front of the PIN digest.
	pinSaltLen = 32

	// pinIterations is the PBKDF2 iteration count. Deliberately slow.
	pinIterations = 100_000
)

// Card is an immutable credential holder issued to a user. PinSaltHash is the
// 32-character salt followed by the hex PBKDF2-HMAC-SHA256 digest of the PIN.
type Card struct {
	CardNumber  int64
	UserID      int64
	PinSaltHash string
}

// ValidatePin reports whether pin matches the card's stored digest. A wrong
// PIN is simply false, never an error.
func (c *Card) ValidatePin(pin string) bool {
	if len(c.PinSaltHash) <= pinSaltLen {
		return false
	}
	salt := c.PinSaltHash[:pinSaltLen]
	want := c.PinSaltHash[pinSaltLen:]
	got := HashPin(pin, salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// HashPin derives the hex digest of pin under salt. Pure: same inputs always
// yield the same output.
func HashPin(pin, salt string) string {
	key := pbkdf2.Key([]byte(pin), []byte(salt), pinIterations, sha256.Size, sha256.New)
	return hex.EncodeToString(key)
}

// NewPinSaltHash issues a fresh salt and returns salt+digest ready to store.
func NewPinSaltHash(pin string) (string, error) {
	raw := make([]byte, pinSaltLen/2)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	salt := hex.EncodeToString(raw)
	return salt + HashPin(pin, salt), nil
}
