package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newContactRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	r := gin.New()
	r.POST("/contact", NewContactHandler(store.NewSubmissionIntake(gdb)).Submit)
	return r, gdb
}

func TestContactSubmit(t *testing.T) {
	r, gdb := newContactRouter(t)

	body := `{"name":"Ann","email":"ann@x.com","subject":"Hi","message":"Hello"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	gdb.Model(&models.ContactSubmission{}).Where("is_read = ?", false).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestContactSubmitRejectsEmptyMessage(t *testing.T) {
	r, gdb := newContactRouter(t)

	body := `{"name":"Ann","email":"ann@x.com","subject":"Hi","message":""}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	gdb.Model(&models.ContactSubmission{}).Count(&count)
	assert.Zero(t, count)
}
