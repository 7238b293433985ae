package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
)

// ErrorResponse mirrors api.ErrorResponse; it is defined here to avoid an
// import cycle.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ContextUserID is the gin context key holding the authenticated user.
const ContextUserID = "userID"

// LocalUserID identifies the caller when authentication is disabled.
const LocalUserID = "local-admin"

// TokenVerifier checks a bearer token and returns the user it belongs to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}

// JWTVerifier verifies HS256 tokens signed with a shared secret. The user is
// taken from the "sub" claim, falling back to "user_id".
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if sub, _ := claims.GetSubject(); sub != "" {
		return sub, nil
	}
	if uid, ok := claims["user_id"].(string); ok && uid != "" {
		return uid, nil
	}
	return "", errors.New("token has no subject")
}

// AuthMiddleware authenticates requests with a TokenVerifier. A nil verifier
// lets every request through as LocalUserID.
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// bearerToken reads the token from the Authorization header or, for
// EventSource clients that cannot set headers, the access_token query
// parameter.
func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if token := c.Query("access_token"); token != "" {
			return token, ""
		}
		return "", "Authorization header is required"
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", "Authorization header format must be 'Bearer {token}'"
	}
	return parts[1], ""
}

// VerifyToken sets ContextUserID and the request actor for downstream
// handlers.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := LocalUserID
		if m.verifier != nil {
			token, problem := bearerToken(c)
			if problem != "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: problem})
				return
			}
			uid, err := m.verifier.Verify(c.Request.Context(), token)
			if err != nil {
				m.logger.Info("Rejected authentication token", zap.String("path", c.Request.URL.Path), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
				return
			}
			userID = uid
		}

		c.Set(ContextUserID, userID)
		c.Request = c.Request.WithContext(core.WithActor(c.Request.Context(), userID))
		c.Next()
	}
}
