package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusWithoutDatabase(t *testing.T) {
	status, ok := NewService(nil).Status(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "disabled", status["database"])
}

func TestStatusPingsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("down"))

	svc := NewService(db)
	status, ok := svc.Status(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "up", status["database"])

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", svc.Handle)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.JSONEq(t, `{"ok":false,"database":"down"}`, resp.Body.String())

	require.NoError(t, mock.ExpectationsWereMet())
}
