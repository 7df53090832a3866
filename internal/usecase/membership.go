package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/domain/repository"
	pkgAuth "github.com/polkiloo/membersonly/internal/pkg/auth"
)

// MembershipUseCase elevates accounts to members.
type MembershipUseCase struct {
	users repository.UserRepository
	gate  *pkgAuth.Gate
}

// NewMembershipUseCase constructs MembershipUseCase.
func NewMembershipUseCase(users repository.UserRepository, gate *pkgAuth.Gate) *MembershipUseCase {
	return &MembershipUseCase{users: users, gate: gate}
}

// Join marks target as a member. Only the account owner may do so; joining
// twice is a no-op.
func (u *MembershipUseCase) Join(ctx context.Context, identity *model.Identity, target uuid.UUID) error {
	if err := u.gate.Authorize(identity, model.ActionElevateMembership, target); err != nil {
		return err
	}
	if identity.Member {
		return nil
	}
	return u.users.SetMember(ctx, target)
}
