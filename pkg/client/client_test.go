package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-service/pkg/client"
)

func newClient(t *testing.T, handler http.Handler) (*client.Client, *client.MemoryCredentialStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := client.NewMemoryCredentialStore()
	return client.New(server.URL, client.NewSession(store)), store
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClientLoginSetsSession(t *testing.T) {
	c, store := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "u@example.com", payload["email"])
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{
				"user": map[string]any{"id": "u-1", "email": "u@example.com", "role": "customer"},
				"auth": map[string]any{"token": "credential-1"},
			},
		})
	}))

	user, err := c.Login(context.Background(), "u@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)

	state := c.Session().Current()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "credential-1", state.Credential)
	assert.True(t, state.Principal.HasRole("customer"))

	stored, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "credential-1", stored)
}

func TestClientAttachesBearerWhenAuthenticated(t *testing.T) {
	var seen string
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{"orders": []any{}},
		})
	}))
	require.NoError(t, c.Session().Login(client.Principal{SubjectID: "u-1", Roles: []string{"customer"}}, "credential-1"))

	_, err := c.MyOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer credential-1", seen)
}

func TestClientOmitsBearerWhenAnonymous(t *testing.T) {
	var seen string
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{"products": []any{}},
		})
	}))

	_, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seen)
}

func TestClientUnauthorizedForcesLogout(t *testing.T) {
	c, store := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{
			"message": "Invalid or expired token",
		})
	}))
	require.NoError(t, c.Session().Login(client.Principal{SubjectID: "u-1", Roles: []string{"customer"}}, "stale-credential"))

	_, err := c.MyOrders(context.Background())

	var expired *client.SessionExpiredError
	require.ErrorAs(t, err, &expired)
	assert.Equal(t, "Invalid or expired token", expired.Message)
	assert.Equal(t, "/login", expired.RedirectTo)

	assert.False(t, c.Session().Current().IsAuthenticated, "the rejected credential is discarded")
	stored, readErr := store.Read()
	require.NoError(t, readErr)
	assert.Empty(t, stored, "durable storage is cleared too")
}

func TestClientForbiddenKeepsSession(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, map[string]any{
			"message": "Forbidden: Insufficient role permissions",
		})
	}))
	require.NoError(t, c.Session().Login(client.Principal{SubjectID: "u-1", Roles: []string{"customer"}}, "credential-1"))

	_, err := c.Orders(context.Background())

	var forbidden *client.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "Forbidden: Insufficient role permissions", forbidden.Message)

	state := c.Session().Current()
	assert.True(t, state.IsAuthenticated, "under-privileged is not unauthenticated")
	assert.Equal(t, "credential-1", state.Credential)
}

func TestClientOtherErrorsSurfaceAsAPIError(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{"message": "Order not found"})
	}))
	require.NoError(t, c.Session().Login(client.Principal{SubjectID: "u-1", Roles: []string{"customer"}}, "credential-1"))

	_, err := c.UpdateOrderStatus(context.Background(), "missing", "Shipped")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Order not found", apiErr.Message)
	assert.True(t, c.Session().Current().IsAuthenticated)
}

func TestClientRegisterLogsSessionIn(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register", r.URL.Path)
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"data": map[string]any{
				"user": map[string]any{"id": "u-2", "email": "new@example.com", "role": "customer"},
				"auth": map[string]any{"token": "credential-2"},
			},
		})
	}))

	user, err := c.Register(context.Background(), "new@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "u-2", user.ID)
	assert.True(t, c.Session().Current().IsAuthenticated)
}

func TestClientLogoutIsLocal(t *testing.T) {
	// No handler calls expected: stateless credentials are discarded client
	// side only.
	c, store := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("logout must not call the server")
	}))
	require.NoError(t, c.Session().Login(client.Principal{SubjectID: "u-1", Roles: []string{"customer"}}, "credential-1"))

	require.NoError(t, c.Logout())

	assert.False(t, c.Session().Current().IsAuthenticated)
	stored, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, stored)
}
