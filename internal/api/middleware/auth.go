package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bluesky-social/indigo/atproto/syntax"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Context keys for storing user information
type contextKey string

const (
	UserDIDKey  contextKey = "user_did"
	JWTTokenKey contextKey = "jwt_token"
)

const (
	clockSkew    = 30 * time.Second
	bearerPrefix = "Bearer "
)

// ErrInvalidSubject is returned when a verified token's sub claim is not a DID
var ErrInvalidSubject = errors.New("token subject must be a DID")

// AuthMiddleware verifies HS256 bearer tokens issued for this platform
type AuthMiddleware struct {
	secret []byte
	issuer string
}

// NewAuthMiddleware creates a new auth middleware.
// issuer may be empty to accept tokens from any issuer.
func NewAuthMiddleware(secret []byte, issuer string) *AuthMiddleware {
	return &AuthMiddleware{
		secret: secret,
		issuer: issuer,
	}
}

// Verify parses and validates a compact JWT and returns the subject DID
func (m *AuthMiddleware) Verify(token string) (jwt.Token, string, error) {
	opts := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256, m.secret),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(clockSkew),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	parsed, err := jwt.Parse([]byte(token), opts...)
	if err != nil {
		return nil, "", err
	}

	did, err := syntax.ParseDID(parsed.Subject())
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidSubject, err)
	}
	return parsed, did.String(), nil
}

// RequireAuth middleware ensures the user is authenticated with a valid JWT
// If not authenticated, returns 401
// If authenticated, injects user DID and token into context
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

		parsed, did, err := m.Verify(token)
		if err != nil {
			log.Printf("[AUTH_FAILURE] type=verification_failed ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserDIDKey, did)
		ctx = context.WithValue(ctx, JWTTokenKey, parsed)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth middleware loads user info if authenticated, but doesn't require it
// Useful for read endpoints that work for both authenticated and anonymous users
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

		parsed, did, err := m.Verify(token)
		if err != nil {
			log.Printf("Optional auth failed: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserDIDKey, did)
		ctx = context.WithValue(ctx, JWTTokenKey, parsed)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IssueToken signs an HS256 token for did valid for ttl
func IssueToken(secret []byte, issuer, did string, ttl time.Duration) (string, error) {
	if _, err := syntax.ParseDID(did); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSubject, err)
	}

	now := time.Now().UTC()
	builder := jwt.NewBuilder().
		Subject(did).
		IssuedAt(now).
		Expiration(now.Add(ttl))
	if issuer != "" {
		builder = builder.Issuer(issuer)
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// GetUserDID extracts the user's DID from the request context
// Returns empty string if not authenticated
func GetUserDID(r *http.Request) string {
	return GetAuthenticatedDID(r.Context())
}

// GetAuthenticatedDID extracts the authenticated user's DID from the context
// Returns empty string if not authenticated
func GetAuthenticatedDID(ctx context.Context) string {
	did, _ := ctx.Value(UserDIDKey).(string)
	return did
}

// GetJWTToken extracts the verified token from the request context
// Returns nil if not authenticated
func GetJWTToken(r *http.Request) jwt.Token {
	token, _ := r.Context().Value(JWTTokenKey).(jwt.Token)
	return token
}

// SetTestUserDID sets the user DID in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestUserDID(ctx context.Context, userDID string) context.Context {
	return context.WithValue(ctx, UserDIDKey, userDID)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	response := `{"error":"AuthenticationRequired","message":"` + message + `"}`
	if _, err := w.Write([]byte(response)); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
