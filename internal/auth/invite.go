package auth

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// inviteAlphabet leaves out characters that are easy to misread.
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const inviteCodeLength = 10

// GenerateInviteCode returns a random invite code and its bcrypt hash. Only
// the hash is persisted; the code is shown once to the trip owner.
func GenerateInviteCode() (code, hash string, err error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}

	hashed, err := bcrypt.GenerateFromPassword(buf, bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash invite code: %w", err)
	}
	return string(buf), string(hashed), nil
}

// MatchInviteCode reports whether code produced hash.
func MatchInviteCode(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
