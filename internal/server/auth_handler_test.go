package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody(email string) map[string]string {
	return map[string]string{
		"name":     "Ada Lovelace",
		"email":    email,
		"password": "correct-horse-battery",
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(t, newMockStore())

	rec := doJSON(t, s, http.MethodPost, "/api/auth/register", "", registerBody("ada@example.com"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "ada@example.com", resp.User.Email)

	// The token works against protected routes.
	listRec := doJSON(t, s, http.MethodGet, "/api/resume", resp.Token, nil)
	assert.Equal(t, http.StatusOK, listRec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t, newMockStore())

	rec := doJSON(t, s, http.MethodPost, "/api/auth/register", "", registerBody("dup@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/auth/register", "", registerBody("dup@example.com"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t, newMockStore())

	cases := []map[string]string{
		{"name": "A", "email": "not-an-email", "password": "long-enough-pw"},
		{"name": "A", "email": "a@example.com", "password": "short"},
		{"name": "", "email": "a@example.com", "password": "long-enough-pw"},
	}
	for _, body := range cases {
		rec := doJSON(t, s, http.MethodPost, "/api/auth/register", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, newMockStore())
	rec := doJSON(t, s, http.MethodPost, "/api/auth/register", "", registerBody("login@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "correct-horse-battery",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t, newMockStore())
	rec := doJSON(t, s, http.MethodPost, "/api/auth/register", "", registerBody("wrong@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "wrong@example.com",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	s := newTestServer(t, newMockStore())

	rec := doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)

	for _, token := range []string{"", "garbage", "eyJhbGciOiJIUzI1NiJ9.bad.sig"} {
		rec := doJSON(t, s, http.MethodGet, "/api/resume", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "token %q", token)
	}
}
