package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes account passwords. Verification lives with whatever
// authentication layer eventually consumes these hashes; this service only
// writes them.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
