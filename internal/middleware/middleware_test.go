package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/stackit/backend/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func viewerRouter(secret string) *gin.Engine {
	r := gin.New()
	r.Use(Viewer(secret, "current_user"))
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, ViewerFrom(c))
	})
	return r
}

func get(r http.Handler, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestViewerFallbacks(t *testing.T) {
	r := viewerRouter("")

	w := get(r, nil)
	assert.Equal(t, "current_user", w.Body.String())

	w = get(r, map[string]string{HeaderViewer: "sarah_dev"})
	assert.Equal(t, "sarah_dev", w.Body.String())

	// tokens are ignored when no secret is configured
	w = get(r, map[string]string{"Authorization": "Bearer garbage", HeaderViewer: "bob"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", w.Body.String())
}

func TestViewerToken(t *testing.T) {
	const secret = "s3cret"
	r := viewerRouter(secret)

	tok := sign(t, secret, jwt.MapClaims{"sub": "react_expert", "exp": time.Now().Add(time.Hour).Unix()})
	w := get(r, map[string]string{"Authorization": "Bearer " + tok, HeaderViewer: "someone_else"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "react_expert", w.Body.String())

	tok = sign(t, secret, jwt.MapClaims{"username": "alex_code"})
	w = get(r, map[string]string{"Authorization": "Bearer " + tok})
	assert.Equal(t, "alex_code", w.Body.String())

	// the header cannot stand in for a token once a secret is configured
	w = get(r, map[string]string{HeaderViewer: "sarah_dev"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "current_user", w.Body.String())
}

func TestViewerRejectsBadTokens(t *testing.T) {
	const secret = "s3cret"
	r := viewerRouter(secret)

	cases := map[string]string{
		"wrong secret": "Bearer " + sign(t, "other", jwt.MapClaims{"sub": "x"}),
		"expired":      "Bearer " + sign(t, secret, jwt.MapClaims{"sub": "x", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no subject":   "Bearer " + sign(t, secret, jwt.MapClaims{"role": "admin"}),
		"not bearer":   "Basic abc",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := get(r, map[string]string{"Authorization": header})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), Viewer("", "current_user"), Logger(logging.New(&buf, "info", "json")))
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFrom(c))
	})

	w := get(r, nil)
	generated := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = get(r, map[string]string{HeaderRequestID: "abc123"})
	assert.Equal(t, "abc123", w.Body.String())

	assert.Contains(t, buf.String(), `"event":"http_request"`)
	assert.Contains(t, buf.String(), `"request_id":"abc123"`)
	assert.Contains(t, buf.String(), `"route":"/who"`)
	assert.Contains(t, buf.String(), `"viewer":"current_user"`)
}

func TestIssueToken(t *testing.T) {
	tok, err := IssueToken("typescript_ninja", "k", time.Hour)
	require.NoError(t, err)

	viewer, err := VerifyToken(tok, "k")
	require.NoError(t, err)
	assert.Equal(t, "typescript_ninja", viewer)

	expired, err := IssueToken("typescript_ninja", "k", -time.Minute)
	require.NoError(t, err)
	_, err = VerifyToken(expired, "k")
	assert.Error(t, err)
}
