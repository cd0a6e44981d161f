package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/store/drivers/sqlite"
	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadReferenceData(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	_, err = loadReferenceData(t.Context(), st)
	require.Error(t, err, "unmigrated database has no reference data")

	require.NoError(t, st.ApplyMigrations())

	ref, err := loadReferenceData(t.Context(), st)
	require.NoError(t, err)
	require.Len(t, ref.Categories(), 9)
	require.Len(t, ref.Currencies(), 8)

	_, ok := ref.CurrencyID("USD")
	require.True(t, ok)
}

func TestNew(t *testing.T) {
	cfg := Config{
		Issuer:              "ledger-test",
		DatabaseFile:        filepath.Join(t.TempDir(), "ledger.db"),
		AccessTokenTTL:      time.Minute,
		RefreshTokenTTL:     time.Hour,
		PasswordCost:        bcrypt.MinCost,
		Env:                 "dev",
		LogLevel:            "error",
		LogFormat:           "json",
		Port:                0,
		ShutdownGracePeriod: time.Second,
	}

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })
	require.Len(t, application.secret, 43, "dev falls back to a random 256-bit secret")

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	client := ledgersdk.NewSDKClient(srv.URL)
	health, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)

	_, err = client.Signup(t.Context(), ledgersdk.SignupRequest{Email: "app@example.com", Password: "Secret123!"})
	require.NoError(t, err)

	session, err := client.AuthenticateWithPassword(t.Context(), "app@example.com", "Secret123!")
	require.NoError(t, err)

	list, err := session.ListExpenses(t.Context(), ledgersdk.ListOptions{})
	require.NoError(t, err)
	require.Empty(t, list)

	resp, err := http.Get(srv.URL + "/livez")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{Env: "prod", PasswordCost: 10, AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	require.Error(t, err)
}
