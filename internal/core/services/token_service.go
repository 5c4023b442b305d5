package services

import (
	"fmt"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/utils"
)

type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a service issuing bearer tokens with the configured secret.
func NewTokenService(cfg *config.Config) portssvc.TokenSvc {
	return &tokenService{cfg: cfg}
}

func (s *tokenService) GenerateToken(actor domain.Actor) (string, error) {
	if actor.UserID == "" {
		return "", fmt.Errorf("cannot issue a token without a user ID")
	}
	token, err := utils.GenerateJWT(actor, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
