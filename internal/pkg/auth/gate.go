package auth

import (
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
)

// Gate decides whether an identity may perform an action. A nil identity is an
// anonymous visitor.
type Gate struct{}

// NewGate creates Gate.
func NewGate() *Gate {
	return &Gate{}
}

// Authorize returns nil when allowed, ErrUnauthorized for anonymous visitors and
// ErrForbidden when the identity lacks the required standing. target is only
// consulted for membership elevation.
func (g *Gate) Authorize(identity *model.Identity, action model.Action, target uuid.UUID) error {
	if identity == nil {
		return domainErrors.ErrUnauthorized
	}
	switch action {
	case model.ActionPostMessage:
		return nil
	case model.ActionViewAuthor:
		if identity.Member {
			return nil
		}
	case model.ActionElevateMembership:
		if target != uuid.Nil && identity.ID == target {
			return nil
		}
	}
	return domainErrors.ErrForbidden
}

// Allows is a boolean form of Authorize.
func (g *Gate) Allows(identity *model.Identity, action model.Action, target uuid.UUID) bool {
	return g.Authorize(identity, action, target) == nil
}
