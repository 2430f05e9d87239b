package services

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

const (
	ComparisonPlaintext    = "plaintext"
	ComparisonConstantTime = "constant_time"
	ComparisonBcrypt       = "bcrypt"
)

// PlaintextComparer is exact string equality. It leaks timing and should only
// be used where the directory is already behind a trusted boundary.
type PlaintextComparer struct{}

func (PlaintextComparer) Matches(stored, supplied string) bool {
	return stored == supplied
}

// ConstantTimeComparer gives the same answers as PlaintextComparer without
// timing that depends on where the strings differ.
type ConstantTimeComparer struct{}

func (ConstantTimeComparer) Matches(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptComparer treats the stored value as a bcrypt hash.
type BcryptComparer struct{}

func (BcryptComparer) Matches(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// NewSecretComparer maps a configuration name to a comparer.
func NewSecretComparer(name string) (ports.SecretComparer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ComparisonConstantTime:
		return ConstantTimeComparer{}, nil
	case ComparisonPlaintext:
		return PlaintextComparer{}, nil
	case ComparisonBcrypt:
		return BcryptComparer{}, nil
	default:
		return nil, fmt.Errorf("unknown secret comparison %q", name)
	}
}
