package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hookdash/internal/platform/config"
)

// Claims identifies a dashboard operator. Tokens are minted out of
// band (cmd/token); there is no login flow in this service.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	config config.AuthConfig
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{config: cfg}
}

func (s *TokenService) Generate(subject, role string) (string, error) {
	ttl := s.config.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := Claims{
		Name: subject,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "hookdash",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
