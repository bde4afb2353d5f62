package client_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-service/pkg/client"
)

// forgeCredential builds a JWT-shaped string with the given payload. The
// signature is garbage; the session never verifies it.
func forgeCredential(t *testing.T, payload map[string]any) string {
	t.Helper()
	encode := func(v any) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(raw)
	}
	header := encode(map[string]string{"alg": "HS256", "typ": "JWT"})
	return header + "." + encode(payload) + ".c2lnbmF0dXJl"
}

func TestSessionStartsAnonymous(t *testing.T) {
	session := client.NewSession(client.NewMemoryCredentialStore())

	state := session.Current()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.Principal)
	assert.Empty(t, state.Credential)
}

func TestSessionLoginLogout(t *testing.T) {
	store := client.NewMemoryCredentialStore()
	session := client.NewSession(store)

	require.NoError(t, session.Login(client.Principal{
		SubjectID: "u-1", Roles: []string{client.RoleCustomer},
	}, "credential-1"))

	state := session.Current()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "u-1", state.Principal.SubjectID)
	assert.Equal(t, "credential-1", state.Credential)

	stored, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "credential-1", stored, "credential is mirrored to durable storage")

	require.NoError(t, session.Logout())
	state = session.Current()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.Principal)

	stored, err = store.Read()
	require.NoError(t, err)
	assert.Empty(t, stored, "durable storage is cleared on logout")
}

func TestSessionLogoutWhileAnonymousIsNoop(t *testing.T) {
	session := client.NewSession(client.NewMemoryCredentialStore())

	require.NoError(t, session.Logout())
	require.NoError(t, session.Logout())
	assert.False(t, session.Current().IsAuthenticated)
}

func TestSessionLoadRehydratesFromStore(t *testing.T) {
	store := client.NewMemoryCredentialStore()
	credential := forgeCredential(t, map[string]any{
		"id":    "u-1",
		"roles": []string{client.RoleManager},
	})
	require.NoError(t, store.Write(credential))

	session := client.NewSession(store)
	require.NoError(t, session.Load())

	state := session.Current()
	assert.True(t, state.IsAuthenticated, "a stored credential is trusted without a server call")
	require.NotNil(t, state.Principal)
	assert.Equal(t, "u-1", state.Principal.SubjectID)
	assert.True(t, state.Principal.HasRole(client.RoleManager))
	assert.Equal(t, credential, state.Credential)
}

func TestSessionLoadEmptyStoreStaysAnonymous(t *testing.T) {
	session := client.NewSession(client.NewMemoryCredentialStore())

	require.NoError(t, session.Load())
	assert.False(t, session.Current().IsAuthenticated)
}

func TestSessionLoadUnreadablePayloadStaysAuthenticated(t *testing.T) {
	store := client.NewMemoryCredentialStore()
	require.NoError(t, store.Write("not-a-jwt"))

	session := client.NewSession(store)
	require.NoError(t, session.Load())

	state := session.Current()
	assert.True(t, state.IsAuthenticated, "optimistic trust holds even for opaque credentials")
	assert.Nil(t, state.Principal)
}

func TestSessionCredentialLooksExpired(t *testing.T) {
	store := client.NewMemoryCredentialStore()
	session := client.NewSession(store)
	now := time.Now()

	expired := forgeCredential(t, map[string]any{
		"id": "u-1", "roles": []string{client.RoleCustomer},
		"exp": now.Add(-time.Hour).Unix(),
	})
	require.NoError(t, store.Write(expired))
	require.NoError(t, session.Load())
	assert.True(t, session.CredentialLooksExpired(now))

	fresh := forgeCredential(t, map[string]any{
		"id": "u-1", "roles": []string{client.RoleCustomer},
		"exp": now.Add(time.Hour).Unix(),
	})
	require.NoError(t, store.Write(fresh))
	require.NoError(t, session.Load())
	assert.False(t, session.CredentialLooksExpired(now))
}

func TestSessionCredentialLooksExpiredWithoutClaim(t *testing.T) {
	store := client.NewMemoryCredentialStore()
	session := client.NewSession(store)

	noExpiry := forgeCredential(t, map[string]any{
		"id": "u-1", "roles": []string{client.RoleCustomer},
	})
	require.NoError(t, store.Write(noExpiry))
	require.NoError(t, session.Load())

	assert.False(t, session.CredentialLooksExpired(time.Now()))
}

func TestFileCredentialStoreRoundTrip(t *testing.T) {
	store, err := client.NewFileCredentialStore(t.TempDir())
	require.NoError(t, err)

	stored, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, stored)

	require.NoError(t, store.Write("credential-1"))
	stored, err = store.Read()
	require.NoError(t, err)
	assert.Equal(t, "credential-1", stored)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	stored, err = store.Read()
	require.NoError(t, err)
	assert.Empty(t, stored)
}
