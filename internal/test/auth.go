package test

import (
	"context"
	"sync/atomic"

	pkgAuth "github.com/polkiloo/membersonly/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn   func(context.Context, string) (string, error)
	VerifyFn func(context.Context, string, string) (bool, error)

	hashCalls   atomic.Int32
	verifyCalls atomic.Int32
}

// Hash returns a predictable hash for the supplied password.
func (h *HasherStub) Hash(ctx context.Context, password string) (string, error) {
	h.hashCalls.Add(1)
	if h.HashFn != nil {
		return h.HashFn(ctx, password)
	}
	return "hash:" + password, nil
}

// Verify validates password against stored hash.
func (h *HasherStub) Verify(ctx context.Context, password, hash string) (bool, error) {
	h.verifyCalls.Add(1)
	if h.VerifyFn != nil {
		return h.VerifyFn(ctx, password, hash)
	}
	return hash == "hash:"+password, nil
}

// HashCalls reports how many times Hash was invoked.
func (h *HasherStub) HashCalls() int { return int(h.hashCalls.Load()) }

// VerifyCalls reports how many times Verify was invoked.
func (h *HasherStub) VerifyCalls() int { return int(h.verifyCalls.Load()) }

var _ pkgAuth.PasswordHasher = (*HasherStub)(nil)
