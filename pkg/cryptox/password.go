package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. These match the parameters used by the original
// deployment so existing stored hashes stay verifiable.
const (
	iterations  uint32 = 3
	memory      uint32 = 64 * 1024 // 64 MiB
	parallelism uint8  = 4
	saltLength         = 16
	keyLength   uint32 = 32
)

// MaxPasswordLength guards against absurd inputs; argon2 itself has no
// meaningful upper bound but hashing megabytes of "password" is a caller bug.
const MaxPasswordLength = 1024

var (
	// ErrInvalidHash reports a stored hash that is not a well-formed
	// PHC-format Argon2id string. This is distinct from a mismatch.
	ErrInvalidHash = errors.New("cryptox: malformed password hash")

	// ErrPasswordLength reports an empty or oversized plaintext password.
	ErrPasswordLength = errors.New("cryptox: password length out of range")
)

// HashPassword generates a PHC-format Argon2id hash string including salt and
// parameters, so verification needs no side-channel state.
func HashPassword(password string) (string, error) {
	if len(password) == 0 || len(password) > MaxPasswordLength {
		return "", ErrPasswordLength
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		b64Salt,
		b64Hash,
	), nil
}

// VerifyPassword compares a plaintext candidate against a PHC-style Argon2id
// hash in constant time. A mismatch returns (false, nil); an error is returned
// only when the stored hash itself is structurally invalid.
func VerifyPassword(encodedHash, password string) (bool, error) {
	// PHC format: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
	parts := make([]string, 0, 6)
	start := 0
	for i := 0; i < len(encodedHash); i++ {
		if encodedHash[i] == '$' {
			parts = append(parts, encodedHash[start:i])
			start = i + 1
		}
	}
	parts = append(parts, encodedHash[start:])

	// Expected structure: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	if len(parts) != 6 || parts[0] != "" {
		return false, fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("%w: not argon2id", ErrInvalidHash)
	}
	if parts[2] != "v=19" {
		return false, fmt.Errorf("%w: wrong version", ErrInvalidHash)
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return false, fmt.Errorf("%w: bad parameters: %v", ErrInvalidHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: bad salt encoding: %v", ErrInvalidHash, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: bad digest encoding: %v", ErrInvalidHash, err)
	}
	if len(expected) == 0 {
		return false, fmt.Errorf("%w: empty digest", ErrInvalidHash)
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - digest lengths are tiny
	)

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
