package handler_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"campus-board/backend/api/route"
	"campus-board/backend/common"
	"campus-board/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const (
	testHubPin        = "5008"
	testAdminPassword = "202601"
)

func init() {
	gin.SetMode(gin.TestMode)
	common.RedisEnabled = false
	common.RDB = nil
	common.GateSecret = "test-gate-secret-for-handler-tests"

	hubHash, err := common.Password2Hash(testHubPin)
	if err != nil {
		panic(err)
	}
	common.HubPinHash = hubHash
	adminHash, err := common.Password2Hash(testAdminPassword)
	if err != nil {
		panic(err)
	}
	common.AdminPasswordHash = adminHash
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupHandlerTest builds a router wired like main: sessions, middlewares and
// the full route table, on top of a throwaway sqlite file and upload dir.
func setupHandlerTest(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	originalSQLitePath := common.SQLitePath
	originalUploadPath := common.UploadPath
	common.SQLitePath = filepath.Join(t.TempDir(), "handler_test.db")
	common.UploadPath = t.TempDir()

	err := model.InitDB()
	assert.NoError(t, err)

	router := gin.New()
	store := cookie.NewStore([]byte("test-session-secret"))
	router.Use(sessions.Sessions("session", store))
	route.SetRouter(router)

	return router, func() {
		common.SQLitePath = originalSQLitePath
		common.UploadPath = originalUploadPath
	}
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	body := recorder.Body.Bytes()
	var resp apiResponse
	err := json.Unmarshal(body, &resp)
	assert.NoError(t, err)
	return resp
}

// sessionCookie returns the session cookie set on resp, falling back to the
// previous one when the response did not touch the session.
func sessionCookie(resp *httptest.ResponseRecorder, previous string) string {
	if value := resp.Header().Get("Set-Cookie"); value != "" {
		return value
	}
	return previous
}

func postForm(t *testing.T, router *gin.Engine, path string, values url.Values, cookieHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("POST", path, strings.NewReader(values.Encode()))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func getWithCookie(t *testing.T, router *gin.Engine, path string, cookieHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", path, nil)
	assert.NoError(t, err)
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// unlockHub runs the gate flow and returns the session cookie to reuse.
func unlockHub(t *testing.T, router *gin.Engine) string {
	t.Helper()
	resp := postForm(t, router, "/landlord", url.Values{"hub_password": {testHubPin}}, "")
	assert.Equal(t, http.StatusFound, resp.Code)
	return sessionCookie(resp, "")
}

func unlockAdmin(t *testing.T, router *gin.Engine) string {
	t.Helper()
	resp := postForm(t, router, "/admin", url.Values{"admin_password": {testAdminPassword}}, "")
	assert.Equal(t, http.StatusFound, resp.Code)
	return sessionCookie(resp, "")
}

func testJPEGBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 120, G: 90, B: 60, A: 255})
	}
	var buf bytes.Buffer
	assert.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

type submission struct {
	fields map[string]string
	multi  map[string][]string
	photos map[string][]byte
}

func postSubmission(t *testing.T, router *gin.Engine, sub submission, cookieHeader string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for field, value := range sub.fields {
		assert.NoError(t, writer.WriteField(field, value))
	}
	for field, values := range sub.multi {
		for _, value := range values {
			assert.NoError(t, writer.WriteField(field, value))
		}
	}
	for name, content := range sub.photos {
		part, err := writer.CreateFormFile("photos", name)
		assert.NoError(t, err)
		_, err = part.Write(content)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/landlord", &body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}
