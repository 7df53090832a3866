package test

import (
	"math/rand/v2"
	"strings"

	"github.com/polkiloo/membersonly/internal/domain/model"
)

const (
	letters      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphanumeric = letters + "0123456789"
)

func randomString(alphabet string, minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + rand.IntN(maxLen-minLen+1)
	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}

// RandomName returns letters only, between minLen and maxLen long.
func RandomName(minLen, maxLen int) string {
	return randomString(letters, minLen, maxLen)
}

// RandomSignUp returns a draft that passes sign-up validation.
func RandomSignUp() model.SignUpDraft {
	return model.SignUpDraft{
		FirstName: RandomName(2, 24),
		LastName:  RandomName(2, 24),
		Email:     strings.ToLower(randomString(alphanumeric, 4, 12)) + "@example.com",
		Password:  randomString(alphanumeric, 8, 24),
	}
}
