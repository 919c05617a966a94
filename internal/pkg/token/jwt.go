package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer identifica os tokens emitidos por este serviço.
const Issuer = "posstock-api"

// ErrInvalidToken cobre assinatura incorreta, expiração e claims malformadas.
var ErrInvalidToken = errors.New("token inválido")

// Claims são os dados do operador embutidos no JWT.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service emite e valida tokens HS256.
type Service struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

// NewService cria o serviço de tokens.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
}

// GenerateToken emite um token para o operador com o papel informado.
func (s *Service) GenerateToken(userID string, role string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   userID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}
	return signed, nil
}

// ValidateToken valida assinatura, emissor e validade, devolvendo as claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(Issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
