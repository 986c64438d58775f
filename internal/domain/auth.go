package domain

import (
	"context"
	"time"
)

// AdminRole is the role claim carried by admin session tokens.
const AdminRole = "admin"

// TokenIssuer issues session tokens (e.g. JWT) for a verified admin.
type TokenIssuer interface {
	Issue(role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the role it carries.
type TokenVerifier interface {
	Verify(token string) (role string, err error)
}

// CodeHasher hashes and compares admin access codes.
// Implementations may use bcrypt, argon2, etc.
type CodeHasher interface {
	Hash(code string) (string, error)
	Compare(hash, code string) error
}

// AuthService verifies the admin access code and issues session tokens.
type AuthService interface {
	// VerifyAdminCode compares code against the configured hash and returns
	// a signed admin token, or ErrUnauthorized on mismatch.
	VerifyAdminCode(ctx context.Context, code string) (token string, err error)
}
