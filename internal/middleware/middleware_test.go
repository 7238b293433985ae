package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
)

type fakeVerifier map[string]string

func (f fakeVerifier) Verify(_ context.Context, token string) (string, error) {
	if uid, ok := f[token]; ok {
		return uid, nil
	}
	return "", errors.New("unknown token")
}

func newRouter(mw *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware(zap.NewNop()))
	r.GET("/me", mw.VerifyToken(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(ContextUserID),
			"actor":  core.ActorFromContext(c.Request.Context()),
		})
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestVerifyToken(t *testing.T) {
	r := newRouter(NewAuthMiddleware(fakeVerifier{"good": "alice"}, nil))

	tests := []struct {
		name   string
		header string
		query  string
		status int
		body   string
	}{
		{"missing header", "", "", http.StatusUnauthorized, `{"error":"Authorization header is required"}`},
		{"bad format", "Token good", "", http.StatusUnauthorized, `{"error":"Authorization header format must be 'Bearer {token}'"}`},
		{"bad token", "Bearer nope", "", http.StatusUnauthorized, `{"error":"Invalid or expired authentication token"}`},
		{"valid header", "Bearer good", "", http.StatusOK, `{"actor":"alice","userID":"alice"}`},
		{"lowercase scheme", "bearer good", "", http.StatusOK, `{"actor":"alice","userID":"alice"}`},
		{"query token", "", "?access_token=good", http.StatusOK, `{"actor":"alice","userID":"alice"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status || w.Body.String() != tt.body {
				t.Errorf("got %d %s, want %d %s", w.Code, w.Body.String(), tt.status, tt.body)
			}
		})
	}
}

func TestNoVerifierUsesLocalUser(t *testing.T) {
	r := newRouter(NewAuthMiddleware(nil, nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"actor":"local-admin","userID":"local-admin"}` {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier("s3cret")
	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	uid, err := v.Verify(context.Background(), sign(jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"sub": "alice", "exp": exp}))
	if err != nil || uid != "alice" {
		t.Errorf("sub token = %q, %v", uid, err)
	}
	uid, err = v.Verify(context.Background(), sign(jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"user_id": "bob", "exp": exp}))
	if err != nil || uid != "bob" {
		t.Errorf("user_id token = %q, %v", uid, err)
	}
	if _, err := v.Verify(context.Background(), sign(jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "alice"})); err == nil {
		t.Error("token with wrong secret accepted")
	}
	expired := jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(-time.Hour).Unix()}
	if _, err := v.Verify(context.Background(), sign(jwt.SigningMethodHS256, []byte("s3cret"), expired)); err == nil {
		t.Error("expired token accepted")
	}
	if _, err := v.Verify(context.Background(), sign(jwt.SigningMethodHS256, []byte("s3cret"), jwt.MapClaims{"exp": exp})); err == nil {
		t.Error("token without subject accepted")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	r := newRouter(NewAuthMiddleware(nil, nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError || w.Body.String() != `{"error":"Internal Server Error"}` {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}
