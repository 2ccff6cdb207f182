package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anonto42/forum-server/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// CookieName is the cookie that carries the signed token
const CookieName = "token"

var (
	ErrTokenMissing = errors.New("token not found")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenService signs and verifies identity tokens and builds the cookie that carries them
type TokenService struct {
	secret       []byte
	ttl          time.Duration
	cookieMaxAge time.Duration
	production   bool
	now          func() time.Time
}

// NewTokenService creates a TokenService. Tokens expire after ttl while the cookie is kept by the
// browser for cookieMaxAge, so clients re-authenticate once the token lapses.
func NewTokenService(secret string, ttl, cookieMaxAge time.Duration, production bool) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is empty")
	}
	return &TokenService{
		secret:       []byte(secret),
		ttl:          ttl,
		cookieMaxAge: cookieMaxAge,
		production:   production,
		now:          time.Now,
	}, nil
}

// Sign issues an HS256 token for the email
func (s *TokenService) Sign(email string) (string, error) {
	now := s.now()
	claims := &models.JwtCustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses the token and returns its claims
func (s *TokenService) Verify(tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	// expiry is checked against the service clock below
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if !claims.VerifyExpiresAt(s.now(), true) || claims.Email == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// FromRequest extracts the token from the cookie, falling back to an Authorization bearer header
func FromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && strings.TrimSpace(parts[1]) != "" {
		return strings.TrimSpace(parts[1]), nil
	}
	return "", ErrTokenMissing
}

// Cookie wraps a token in the HttpOnly cookie sent to the browser
func (s *TokenService) Cookie(token string) *http.Cookie {
	cookie := s.baseCookie()
	cookie.Value = token
	cookie.MaxAge = int(s.cookieMaxAge / time.Second)
	cookie.Expires = s.now().Add(s.cookieMaxAge)
	return cookie
}

// ClearCookie returns a cookie with the same attributes that makes the browser drop the token
func (s *TokenService) ClearCookie() *http.Cookie {
	cookie := s.baseCookie()
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	return cookie
}

func (s *TokenService) baseCookie() *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.production,
		SameSite: http.SameSiteStrictMode,
	}
	if s.production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
