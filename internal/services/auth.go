package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Token scopes. A token is only accepted by the verifier for its own scope,
// so a password reset token can never be replayed as an access token.
const (
	scopeAccess        = "access"
	scopeVerifyEmail   = "verify_email"
	scopeResetPassword = "reset_password"
)

// Token lifetimes.
const (
	emailTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL = 180 * time.Second
)

// Hash hashes and verifies passwords with bcrypt.
type Hash struct{}

// HashPassword returns the bcrypt hash of a plaintext password.
func (Hash) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the plaintext password matches the hash.
func (Hash) VerifyPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// AuthService issues and verifies the three token kinds used by the API:
// access tokens, email verification tokens, and password reset tokens. All
// are HS256 JWTs signed with the same secret, distinguished by scope.
type AuthService struct {
	secret    []byte
	accessTTL time.Duration
}

// NewAuthService returns an auth service signing with secret. accessTTL
// bounds the access token lifetime.
func NewAuthService(secret string, accessTTL time.Duration) *AuthService {
	return &AuthService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

type tokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func (s *AuthService) createToken(subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

// verifyToken parses the token, checks the signature and expiry, and requires
// the given scope. Returns the subject claim.
func (s *AuthService) verifyToken(tokenString, scope string) (string, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.Scope != scope || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// CreateAccessToken issues an access token for the given username.
func (s *AuthService) CreateAccessToken(username string) (string, error) {
	return s.createToken(username, scopeAccess, s.accessTTL)
}

// VerifyAccessToken validates an access token and returns the username.
func (s *AuthService) VerifyAccessToken(token string) (string, error) {
	return s.verifyToken(token, scopeAccess)
}

// CreateEmailToken issues an email verification token for the given address.
func (s *AuthService) CreateEmailToken(email string) (string, error) {
	return s.createToken(email, scopeVerifyEmail, emailTokenTTL)
}

// EmailFromToken validates an email verification token and returns the
// address it was issued for.
func (s *AuthService) EmailFromToken(token string) (string, error) {
	return s.verifyToken(token, scopeVerifyEmail)
}

// CreateResetToken issues a short-lived password reset token.
func (s *AuthService) CreateResetToken(email string) (string, error) {
	return s.createToken(email, scopeResetPassword, resetTokenTTL)
}

// VerifyResetToken validates a password reset token and returns the address
// it was issued for.
func (s *AuthService) VerifyResetToken(token string) (string, error) {
	return s.verifyToken(token, scopeResetPassword)
}
