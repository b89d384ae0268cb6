package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineUUID(t *testing.T) {
	t.Run("matches offline-mode servers for a well-known name", func(t *testing.T) {
		// Cross-checked against what vanilla servers assign in offline mode.
		assert.Equal(t, "8667ba71-b85a-4004-af54-457a9734eed7", OfflineUUID("Steve").String())
	})

	t.Run("deterministic and name-sensitive", func(t *testing.T) {
		assert.Equal(t, OfflineUUID("Herobrine"), OfflineUUID("Herobrine"))
		assert.NotEqual(t, OfflineUUID("Herobrine"), OfflineUUID("herobrine"))
	})

	t.Run("carries version 3 and rfc 4122 variant bits", func(t *testing.T) {
		id := OfflineUUID("Steve")
		assert.Equal(t, uint8(3), uint8(id.Version()))
	})
}

func TestNewOffline(t *testing.T) {
	account := NewOffline("Steve")
	assert.Equal(t, "Steve", account.Username)
	assert.Equal(t, "0", account.AccessToken)
	assert.Equal(t, KindOffline, account.Kind)
	assert.Equal(t, "legacy", account.UserType())
	assert.Equal(t, OfflineUUID("Steve").String(), account.UUID)
}

func TestUserType(t *testing.T) {
	assert.Equal(t, "msa", Account{Kind: KindMicrosoft}.UserType())
	assert.Equal(t, "legacy", Account{Kind: KindOffline}.UserType())
}

func TestStaticProvider(t *testing.T) {
	provider := NewStaticProvider()

	_, err := provider.Lookup("missing")
	assert.Error(t, err)

	account := NewOffline("Steve")
	provider.Add(account)

	got, err := provider.Lookup(account.UUID)
	require.NoError(t, err)
	assert.Equal(t, account, got)
}
