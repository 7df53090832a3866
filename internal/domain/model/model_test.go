package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestActionValues(t *testing.T) {
	cases := []struct {
		name  string
		got   Action
		value string
	}{
		{"post", ActionPostMessage, "post_message"},
		{"view", ActionViewAuthor, "view_author"},
		{"elevate", ActionElevateMembership, "elevate_membership"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestUserIdentityDropsHash(t *testing.T) {
	u := &User{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", LoginID: "ada@example.com", PasswordHash: "secret", Member: true}
	id := u.Identity()
	if id.ID != u.ID || id.LoginID != u.LoginID || !id.Member {
		t.Fatalf("unexpected identity %+v", id)
	}
	if id.DisplayName() != "Ada Lovelace" {
		t.Fatalf("unexpected display name %q", id.DisplayName())
	}
}

func TestBoardEntryMasked(t *testing.T) {
	entry := BoardEntry{
		Message: Message{ID: uuid.New(), Title: "t", Text: "x", AuthorID: uuid.New()},
		Author:  &Author{FirstName: "Ada"},
	}
	masked := entry.Masked()
	if masked.Author != nil || masked.AuthorID != uuid.Nil {
		t.Fatalf("expected author data to be removed: %+v", masked)
	}
	if entry.Author == nil {
		t.Fatal("masking must not modify the original entry")
	}
	if masked.Title != "t" || masked.Text != "x" {
		t.Fatal("masking must keep message content")
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	if s.Expired(now) {
		t.Fatal("session should still be valid")
	}
	if !s.Expired(now.Add(time.Minute)) {
		t.Fatal("session should be expired at its deadline")
	}
	if (&Session{}).Expired(now) {
		t.Fatal("session without deadline never expires")
	}
}

func TestNormalizeLoginID(t *testing.T) {
	if got := NormalizeLoginID("  Ada@Example.COM "); got != "ada@example.com" {
		t.Fatalf("unexpected login id %q", got)
	}
}
