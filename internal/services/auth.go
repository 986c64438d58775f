package services

import (
	"context"
	"time"

	"devevent/internal/domain"
)

// adminTokenExpiry is the lifetime of an admin session token.
const adminTokenExpiry = 24 * time.Hour

type authService struct {
	codeHash string
	hasher   domain.CodeHasher
	issuer   domain.TokenIssuer
}

// NewAuthService returns an AuthService that checks codes against codeHash
// and issues admin tokens via issuer.
func NewAuthService(codeHash string, hasher domain.CodeHasher, issuer domain.TokenIssuer) domain.AuthService {
	return &authService{
		codeHash: codeHash,
		hasher:   hasher,
		issuer:   issuer,
	}
}

func (s *authService) VerifyAdminCode(ctx context.Context, code string) (string, error) {
	if s.codeHash == "" || code == "" {
		return "", domain.ErrUnauthorized
	}
	if err := s.hasher.Compare(s.codeHash, code); err != nil {
		return "", domain.ErrUnauthorized
	}
	token, err := s.issuer.Issue(domain.AdminRole, adminTokenExpiry)
	if err != nil {
		return "", err
	}
	return token, nil
}
