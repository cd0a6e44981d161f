package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"128-bit token", TokenSize128},
		{"256-bit token", TokenSize256},
		{"512-bit token", TokenSize512},
		{"custom size", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			token2, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestMustGenerateToken_Panics(t *testing.T) {
	require.NotEmpty(t, MustGenerateToken(TokenSize256))
	require.Panics(t, func() {
		MustGenerateToken(0)
	})
}

func TestFingerprintToken(t *testing.T) {
	secret := []byte("server-secret")

	fp1a := FingerprintToken(secret, "test-token-1")
	fp1b := FingerprintToken(secret, "test-token-1")
	fp2 := FingerprintToken(secret, "test-token-2")
	other := FingerprintToken([]byte("other-secret"), "test-token-1")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2, "different tokens should have different fingerprints")
	require.NotEqual(t, fp1a, other, "fingerprint must depend on the secret")
	require.Len(t, fp1a, 64, "HMAC-SHA256 hex should be 64 chars")
	require.NotContains(t, fp1a, "test-token-1")
}

func TestVerifyFingerprint(t *testing.T) {
	secret := []byte("server-secret")
	fp := FingerprintToken(secret, "refresh")

	require.True(t, VerifyFingerprint(secret, "refresh", fp))
	require.False(t, VerifyFingerprint(secret, "refresh2", fp))
	require.False(t, VerifyFingerprint([]byte("nope"), "refresh", fp))
	require.False(t, VerifyFingerprint(secret, "refresh", ""))
}
