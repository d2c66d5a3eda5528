// Package credential models the stored password field of student and staff
// records. The field predates a finished migration to hashed secrets: a record
// may hold a bcrypt hash or a plain-text value (legacy passwords and the
// temporary passwords issued at admission approval). Representing the field as
// a tagged variant keeps the dual verification path explicit instead of a
// silent fallback.
package credential

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Kind tags the encoding of a stored credential.
type Kind int

const (
	// KindHashed marks a bcrypt hash.
	KindHashed Kind = iota
	// KindPlain marks a plain-text value (legacy or temporary password).
	KindPlain
)

// Provenance reports which verification path matched. Callers use it to flag
// sessions that authenticated with a plain-text or temporary password.
type Provenance string

const (
	// ProvenanceHashed means the bcrypt path matched.
	ProvenanceHashed Provenance = "hashed"
	// ProvenancePlain means direct equality matched a plain-text value.
	ProvenancePlain Provenance = "plaintext-or-temp"
)

// Policy selects the encoding applied when writing a new credential.
type Policy string

const (
	// PolicyPlain stores new credentials as plain text. This is the recorded
	// institutional default, kept as an explicit choice rather than silently
	// changed; see PolicyBcrypt for the hardened option.
	PolicyPlain Policy = "plain"
	// PolicyBcrypt stores new credentials as bcrypt hashes.
	PolicyBcrypt Policy = "bcrypt"
)

// ErrUnknownPolicy is returned when a configured encoding policy is not
// recognised.
var ErrUnknownPolicy = errors.New("unknown password encoding policy")

// ParsePolicy validates a configured policy string.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyPlain, PolicyBcrypt:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Credential is the decoded form of a stored password field.
type Credential struct {
	kind  Kind
	value string
}

// Parse classifies a stored password field by encoding. Bcrypt hashes are
// recognised by their version prefix; anything else is treated as plain text.
func Parse(stored string) Credential {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(stored, prefix) {
			return Credential{kind: KindHashed, value: stored}
		}
	}
	return Credential{kind: KindPlain, value: stored}
}

// Kind returns the detected encoding.
func (c Credential) Kind() Kind {
	return c.kind
}

// Verify checks a supplied secret against the credential and reports which
// path matched. An empty stored value never matches.
func (c Credential) Verify(secret string) (Provenance, bool) {
	if c.value == "" {
		return "", false
	}
	switch c.kind {
	case KindHashed:
		if bcrypt.CompareHashAndPassword([]byte(c.value), []byte(secret)) == nil {
			return ProvenanceHashed, true
		}
		return "", false
	case KindPlain:
		if subtle.ConstantTimeCompare([]byte(c.value), []byte(secret)) == 1 {
			return ProvenancePlain, true
		}
		return "", false
	default:
		return "", false
	}
}

// Encode produces the stored form of a new secret under the given policy.
func Encode(secret string, policy Policy) (string, error) {
	switch policy {
	case PolicyBcrypt:
		hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		return string(hashed), nil
	case PolicyPlain:
		return secret, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}
