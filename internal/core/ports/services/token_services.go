package services

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// TokenSvc issues signed bearer tokens for an actor.
type TokenSvc interface {
	GenerateToken(actor domain.Actor) (string, error)
}
