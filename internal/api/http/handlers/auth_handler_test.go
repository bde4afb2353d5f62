package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-service/internal/domain"
)

func TestRegisterIssuesUsableToken(t *testing.T) {
	f := newFixture(t)

	status, body := f.request(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "new@example.com", "password": "s3cret"})

	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "new@example.com", user["email"])
	assert.Equal(t, string(domain.RoleCustomer), user["role"])

	token := data["auth"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)

	status, _ = f.request(t, http.MethodGet, "/api/orders/mine", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)

	payload := map[string]string{"email": "dup@example.com", "password": "s3cret"}
	status, _ := f.request(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, status)

	status, body := f.request(t, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email already registered", body["message"])
}

func TestRegisterMissingFields(t *testing.T) {
	f := newFixture(t)

	status, _ := f.request(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "new@example.com"})

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)

	status, _ := f.request(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "u@example.com", "password": "right"})
	require.Equal(t, http.StatusCreated, status)

	status, _ = f.request(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "u@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginReturnsToken(t *testing.T) {
	f := newFixture(t)

	status, _ := f.request(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "u@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, status)

	status, body := f.request(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "u@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusOK, status)
	token := body["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)
	assert.NotEmpty(t, token)
}

func TestUsersListRequiresManagerOrAdmin(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "u-1", "a@example.com", domain.RoleCustomer)

	status, body := f.request(t, http.MethodGet, "/api/users", f.token(t, "mgr-1", domain.RoleManager), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].(map[string]any)["users"], 1)

	status, body = f.request(t, http.MethodGet, "/api/users", f.token(t, "cust-1", domain.RoleCustomer), nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Forbidden: Insufficient role permissions", body["message"])
}

func TestUpdateUserRoleAdminOnly(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "u-1", "a@example.com", domain.RoleCustomer)

	// A manager holds manager only; the role-set for this route is admin.
	status, body := f.request(t, http.MethodPut, "/api/users/u-1/role",
		f.token(t, "mgr-1", domain.RoleManager), map[string]string{"role": "manager"})
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Forbidden: Insufficient role permissions", body["message"])

	status, body = f.request(t, http.MethodPut, "/api/users/u-1/role",
		f.token(t, "admin-1", domain.RoleAdmin), map[string]string{"role": "manager"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(domain.RoleManager), body["data"].(map[string]any)["user"].(map[string]any)["role"])
}

func TestUpdateUserRoleInvalidRole(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "u-1", "a@example.com", domain.RoleCustomer)

	status, _ := f.request(t, http.MethodPut, "/api/users/u-1/role",
		f.token(t, "admin-1", domain.RoleAdmin), map[string]string{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateUserRoleUnknownUser(t *testing.T) {
	f := newFixture(t)

	status, _ := f.request(t, http.MethodPut, "/api/users/missing/role",
		f.token(t, "admin-1", domain.RoleAdmin), map[string]string{"role": "manager"})
	assert.Equal(t, http.StatusNotFound, status)
}

func seedUser(t *testing.T, f *fixture, id, email string, role domain.Role) {
	t.Helper()
	require.NoError(t, f.users.Create(context.Background(), &domain.User{
		ID: id, Email: email, Role: role,
	}))
}
