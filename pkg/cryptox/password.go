package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor used by HashPassword. It is stored
// atomically so tests can lower it without racing request handlers.
var passwordCost atomic.Int64

func init() {
	passwordCost.Store(int64(bcrypt.DefaultCost))
}

// SetPasswordCost sets the bcrypt cost for new hashes. Values outside of
// bcrypt's accepted range are rejected. Existing hashes keep the cost they
// were created with.
func SetPasswordCost(cost int) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return errors.New("cryptox: bcrypt cost out of range")
	}
	passwordCost.Store(int64(cost))
	return nil
}

// PasswordCost returns the bcrypt cost currently used for new hashes.
func PasswordCost() int {
	return int(passwordCost.Load())
}

// HashPassword returns a bcrypt hash of the SHA-256 digest of password.
//
// bcrypt only looks at the first 72 bytes of its input, so the plaintext is
// digested first. The digest is base64 encoded so the bcrypt input is always
// 44 printable bytes no matter how long the password is.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(digestPassword(password), PasswordCost())
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches encodedHash. A malformed
// hash is treated as a mismatch.
func VerifyPassword(password, encodedHash string) bool {
	if encodedHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), digestPassword(password))
	return err == nil
}

func digestPassword(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// BcryptHasher adapts HashPassword/VerifyPassword to a hasher value that can
// be handed to services.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) { return HashPassword(password) }

func (BcryptHasher) Verify(password, encodedHash string) bool {
	return VerifyPassword(password, encodedHash)
}
