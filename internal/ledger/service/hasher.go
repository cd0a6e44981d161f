package service

// PasswordHasher hashes and verifies user passwords. Verify never returns
// an error: a malformed hash simply does not match.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
}
