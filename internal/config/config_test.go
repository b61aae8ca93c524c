package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FIREBASE_DB_URL", "")
	t.Setenv("FIREBASE_DB_SECRET", "")
	t.Setenv("RELAY_TIMEOUT", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, 10*time.Second, cfg.RelayTimeout)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "assessments.received", cfg.NATSSubject)
	require.False(t, cfg.RelayEnabled())
}

func TestLoadFirebaseSettings(t *testing.T) {
	t.Setenv("FIREBASE_DB_URL", "https://intake-demo.firebaseio.com")
	t.Setenv("FIREBASE_DB_SECRET", "s3cr3t")
	t.Setenv("RELAY_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.RelayEnabled())
	require.Equal(t, "https://intake-demo.firebaseio.com", cfg.FirebaseDBURL)
	require.Equal(t, "s3cr3t", cfg.FirebaseDBSecret)
	require.Equal(t, 3*time.Second, cfg.RelayTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("relative firebase url", func(t *testing.T) {
		t.Setenv("FIREBASE_DB_URL", "intake-demo.firebaseio.com")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad relay timeout", func(t *testing.T) {
		t.Setenv("FIREBASE_DB_URL", "")
		t.Setenv("RELAY_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("non positive relay timeout", func(t *testing.T) {
		t.Setenv("FIREBASE_DB_URL", "")
		t.Setenv("RELAY_TIMEOUT", "0s")
		_, err := Load()
		require.Error(t, err)
	})
}
