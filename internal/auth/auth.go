package auth

import (
	"context"
	"crypto/rand"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName    = "sag_session"
	SessionExpiry = 7 * 24 * time.Hour
)

// Party-themed words for phrase generation
var partyWords = []string{
	"confetti", "karaoke", "pinata", "trivia", "snacks",
	"disco", "charades", "mystery", "imposter", "scoreboard",
	"teams", "buzzer", "spotlight", "encore", "jackpot",
}

type contextKey string

const adminIDKey contextKey = "adminID"

// Claims is the JWT session payload
type Claims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// Auth handles admin authentication: a single admin phrase checked
// against a bcrypt hash, with HS256 JWT session cookies.
type Auth struct {
	phraseHash []byte
	secret     []byte
	adminID    string
}

// New creates an Auth from a plaintext phrase and a signing secret.
// The phrase is hashed immediately and not retained.
func New(phrase, secret, adminID string) (*Auth, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(phrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Auth{
		phraseHash: hash,
		secret:     []byte(secret),
		adminID:    adminID,
	}, nil
}

// GeneratePhrase creates a random 3-word admin phrase
func GeneratePhrase() string {
	words := make([]string, 3)
	for i := range words {
		words[i] = partyWords[randomInt(len(partyWords))]
	}
	return strings.Join(words, "-")
}

// Login validates the phrase and returns a signed session token
func (a *Auth) Login(phrase string) (string, bool) {
	if bcrypt.CompareHashAndPassword(a.phraseHash, []byte(phrase)) != nil {
		return "", false
	}

	now := time.Now()
	claims := Claims{
		AdminID: a.adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionExpiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", false
	}
	return token, true
}

// ValidateToken parses a session token and returns the admin id
func (a *Auth) ValidateToken(token string) (string, bool) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", false
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.AdminID == "" {
		return "", false
	}
	return claims.AdminID, true
}

// AdminFromRequest extracts and validates the session from a request
func (a *Auth) AdminFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return a.ValidateToken(cookie.Value)
}

// RequireAuthAPI middleware for admin API endpoints (returns 401)
func (a *Auth) RequireAuthAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := a.AdminFromRequest(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Unauthorized - please log in"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAdminID(r.Context(), adminID)))
	})
}

// WithAdminID stores the authenticated admin id in a context
func WithAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

// AdminID returns the authenticated admin id from a request context
func AdminID(ctx context.Context) string {
	id, _ := ctx.Value(adminIDKey).(string)
	return id
}

// SetSessionCookie sets the session cookie on the response
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionExpiry.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// randomInt returns a random int in [0, max)
func randomInt(max int) int {
	bytes := make([]byte, 1)
	rand.Read(bytes)
	return int(bytes[0]) % max
}
