package account

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"nutrigen/internal/configs"
)

// PasswordPolicy turns a password into its stored form and checks candidates against it.
type PasswordPolicy interface {
	Hash(password string) (string, error)
	Verify(stored, candidate string) bool
}

// NewPasswordPolicy returns the policy named by configs.PasswordStorage*.
func NewPasswordPolicy(mode string) PasswordPolicy {
	if mode == configs.PasswordStoragePlain {
		return Plain{}
	}
	return Bcrypt{Cost: bcrypt.DefaultCost}
}

// Plain stores passwords as given and compares them exactly (case-sensitive).
type Plain struct{}

func (Plain) Hash(password string) (string, error) {
	return password, nil
}

func (Plain) Verify(stored, candidate string) bool {
	return stored == candidate
}

// bcryptMaxInput is the longest input bcrypt accepts.
const bcryptMaxInput = 72

// Bcrypt stores new passwords as bcrypt hashes. Values without a bcrypt prefix are
// legacy plaintext records and are compared exactly. Passwords longer than bcrypt's
// 72-byte limit are hashed with SHA-256 first.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword(bcryptInput(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (Bcrypt) Verify(stored, candidate string) bool {
	if !isBcryptHash(stored) {
		return stored == candidate
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), bcryptInput(candidate)) == nil
}

// bcryptInput returns password unchanged when bcrypt can take it, otherwise the hex
// SHA-256 digest of it.
func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
