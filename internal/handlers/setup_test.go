package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clientdesk/internal/auth"
	"clientdesk/internal/db"
	"clientdesk/internal/models"
	"clientdesk/internal/policy"
	"clientdesk/internal/services"
	"clientdesk/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	require.NoError(t, db.Seed(conn))
	return conn
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func createEmployee(t *testing.T, conn *gorm.DB, email, roleName string) models.Employee {
	t.Helper()
	var role models.Role
	require.NoError(t, conn.Where("name = ?", roleName).First(&role).Error)
	e := models.Employee{Email: email, Name: email, Password: "x", RoleID: &role.ID}
	require.NoError(t, conn.Create(&e).Error)
	return e
}

func createClient(t *testing.T, conn *gorm.DB, name, status string) models.Client {
	t.Helper()
	c := models.Client{Name: name, Company: name + " GmbH", Status: status}
	require.NoError(t, conn.Create(&c).Error)
	return c
}

// asEmployee attaches the session context the auth middleware would set.
func asEmployee(r *http.Request, e models.Employee) *http.Request {
	return r.WithContext(auth.WithEmployeeID(r.Context(), e.ID))
}

func newClientHandler(t *testing.T, conn *gorm.DB) *ClientHandler {
	t.Helper()
	gate := policy.NewAuthGate(conn, time.Minute)
	return NewClientHandler(conn, gate, policy.NewAssignmentChecker(conn, gate), testLogger())
}

func newDocumentHandler(t *testing.T, conn *gorm.DB) (*DocumentHandler, *storage.DiskStore) {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir(), "/files")
	require.NoError(t, err)
	gate := policy.NewAuthGate(conn, time.Minute)
	docs := services.NewDocumentService(conn, store, testLogger())
	return NewDocumentHandler(conn, gate, docs, newClientHandler(t, conn), testLogger()), store
}

// multipartForm builds a multipart body with the given fields and,
// when content is non-nil, a file part named "file".
func multipartForm(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if content != nil {
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postMultipart(t *testing.T, target string, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	body, contentType := multipartForm(t, fields, fileName, content)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	return req
}
