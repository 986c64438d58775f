package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"devevent/internal/domain"
)

type bcryptCodeHasher struct {
	cost int
}

// NewBcryptCodeHasher returns a CodeHasher backed by bcrypt. The admin access
// code is stored only as a hash (ADMIN_CODE_HASH); Hash exists to generate
// that value, Compare to check codes at login.
func NewBcryptCodeHasher(cost int) domain.CodeHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptCodeHasher{cost: cost}
}

func (h *bcryptCodeHasher) Hash(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptCodeHasher) Compare(hash, code string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
}
