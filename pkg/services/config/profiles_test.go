package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilesContent = `[production]
billing_api = https://billing.example.com
cf_api      = https://api.example.com
token       = prod-token

[empty]
`

func writeProfiles(t *testing.T) string {
	path := filepath.Join(t.TempDir(), ".paascfg")
	require.NoError(t, os.WriteFile(path, []byte(profilesContent), 0o600))
	return path
}

func TestRegistry_GetProfiles(t *testing.T) {
	reg, err := NewRegistry(writeProfiles(t))
	require.NoError(t, err)

	profiles, err := reg.GetProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"production"}, profiles)
}

func TestRegistry_GetProfile(t *testing.T) {
	reg, err := NewRegistry(writeProfiles(t))
	require.NoError(t, err)

	t.Run("existing profile", func(t *testing.T) {
		p, err := reg.GetProfile(context.Background(), "production")
		require.NoError(t, err)
		assert.Equal(t, "https://billing.example.com", p.BillingAPI)
		assert.Equal(t, "https://api.example.com", p.CFAPI)
		assert.Equal(t, "prod-token", p.Token)
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := reg.GetProfile(context.Background(), "staging")
		assert.Error(t, err)
	})

	t.Run("profile without keys", func(t *testing.T) {
		_, err := reg.GetProfile(context.Background(), "empty")
		assert.Error(t, err)
	})
}

func TestProfile_Apply_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Billing: BillingConfig{APIEndpoint: "https://explicit-billing"},
	}
	p := &Profile{BillingAPI: "https://billing", CFAPI: "https://cf", Token: "tok"}

	p.Apply(cfg)

	assert.Equal(t, "https://explicit-billing", cfg.Billing.APIEndpoint)
	assert.Equal(t, "tok", cfg.Billing.Token)
	assert.Equal(t, "https://cf", cfg.Directory.APIEndpoint)
	assert.Equal(t, "tok", cfg.Directory.Token)
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
