package users_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/users"
)

func newTestRouter(t *testing.T) (*gin.Engine, *users.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	svc := users.NewService(users.NewMemoryRepo(), "admin", "admin-secret")

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(issuer))
	users.NewHandler(svc, issuer, false).RegisterRoutes(api)
	return router, svc
}

func postJSON(router http.Handler, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func get(router http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func sessionCookie(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range resp.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestRegisterLoginAndMe(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := postJSON(router, "/api/v1/auth/register", map[string]string{
		"role": "student", "name": "Asha", "username": "asha", "dob": "2001-04-12", "phno": "555",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{"success":true,"message":"Student registered successfully"}`, resp.Body.String())

	resp = postJSON(router, "/api/v1/auth/register", map[string]string{
		"role": "student", "name": "Asha", "username": "asha", "dob": "2001-04-12",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = postJSON(router, "/api/v1/auth/login", map[string]string{
		"username": "asha", "dob": "2001-04-12", "user_type": "student",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var login struct {
		Success  bool   `json:"success"`
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &login))
	assert.True(t, login.Success)
	assert.Equal(t, "/carpre", login.Redirect)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "token")
	cookie := sessionCookie(t, resp)
	assert.True(t, cookie.HttpOnly)

	resp = get(router, "/api/v1/me", cookie)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"name":"Asha","username":"asha","phno":"555","type":"student"}`, resp.Body.String())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := postJSON(router, "/api/v1/auth/login", map[string]string{"username": "asha"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = postJSON(router, "/api/v1/auth/login", map[string]string{
		"username": "nobody", "dob": "x", "user_type": "student",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid credentials"}`, resp.Body.String())
}

func TestMeRequiresSession(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := get(router, "/api/v1/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestMentorStudentsRequiresMentorRole(t *testing.T) {
	router, svc := newTestRouter(t)
	ctx := t.Context()

	_, err := svc.Register(ctx, users.Registration{Role: users.RoleMentor, Name: "Maya", Username: "maya", Secret: "m"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, users.Registration{Role: users.RoleStudent, Name: "Abe", Username: "abe", Secret: "s", Phone: "1", AssignedMentor: "maya"})
	require.NoError(t, err)

	resp := postJSON(router, "/api/v1/auth/login", map[string]string{"username": "abe", "dob": "s", "user_type": "student"})
	studentCookie := sessionCookie(t, resp)
	resp = get(router, "/api/v1/mentor/students", studentCookie)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = postJSON(router, "/api/v1/auth/login", map[string]string{"username": "maya", "dob": "m", "user_type": "mentor"})
	mentorCookie := sessionCookie(t, resp)
	resp = get(router, "/api/v1/mentor/students", mentorCookie)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"success":true,"students":[{"id":"abe","name":"Abe","phone":"1"}]}`, resp.Body.String())

	resp = get(router, "/api/v1/students/abe", mentorCookie)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = get(router, "/api/v1/students/maya", mentorCookie)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAdminLoginAndLogout(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := postJSON(router, "/api/v1/auth/login", map[string]string{"username": "admin", "dob": "admin-secret", "user_type": "admin"})
	require.Equal(t, http.StatusOK, resp.Code)
	cookie := sessionCookie(t, resp)

	resp = get(router, "/api/v1/me", cookie)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"type":"admin"`)

	resp = postJSON(router, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, -1, sessionCookie(t, resp).MaxAge)
}
