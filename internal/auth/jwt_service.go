package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry is the duration for which login tokens are valid. There is no
// refresh flow and no revocation list; expiry is the only lifecycle bound.
const TokenExpiry = 30 * 24 * time.Hour

// AdminSubject is the sentinel subject of the bootstrap superuser, which has
// no backing record.
const AdminSubject = "admin"

// ErrInvalidToken is returned when a presented token fails signature or
// expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents JWT claims. The subject is a record UUID or AdminSubject.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies login tokens with an injected secret.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateToken signs a token for the given subject, valid for TokenExpiry.
func (s *JWTService) GenerateToken(subject string) (string, error) {
	claims := &Claims{
		UserID: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies signature and expiry and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
