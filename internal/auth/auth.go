package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"problem-solver/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the claims of an admin session token
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service signs and verifies admin tokens
type Service struct {
	privateKey    *ecdsa.PrivateKey
	publicKey     *ecdsa.PublicKey
	jwtExpiration time.Duration
	now           func() time.Time
}

// NewService creates a new authentication service. The secret may hold a
// PEM-encoded EC private key; otherwise an ephemeral key is generated.
func NewService(cfg *config.JWTConfig) (*Service, error) {
	privateKey, err := loadOrGenerateKey(cfg.Secret)
	if err != nil {
		return nil, err
	}
	expiration := cfg.Expiration
	if expiration <= 0 {
		expiration = 8 * time.Hour
	}
	return &Service{
		privateKey:    privateKey,
		publicKey:     &privateKey.PublicKey,
		jwtExpiration: expiration,
		now:           time.Now,
	}, nil
}

// Expiration returns the lifetime of issued tokens
func (s *Service) Expiration() time.Duration {
	return s.jwtExpiration
}

// HashPassword hashes a password using bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyPassword verifies a password against a hash
func (s *Service) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// GenerateToken issues a signed token and returns it with its JTI and expiry
func (s *Service) GenerateToken(username string) (string, string, time.Time, error) {
	jti, err := GenerateRandomToken(16)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate JTI: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(s.jwtExpiration)
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	tokenString, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, jti, expiresAt, nil
}

// ValidateToken validates a token and returns its claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.publicKey, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrExpiredToken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ExtractJTI reads the JTI without checking signature or expiry, so logout
// can revoke sessions of expired tokens
func (s *Service) ExtractJTI(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, _, err := parser.ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ID == "" {
		return "", ErrInvalidToken
	}

	return claims.ID, nil
}

// GenerateRandomToken returns a URL-safe random string of length random bytes
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func loadOrGenerateKey(secret string) (*ecdsa.PrivateKey, error) {
	if block, _ := pem.Decode([]byte(secret)); block != nil {
		privateKey, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse EC private key from JWT_SECRET: %w", err)
		}
		return privateKey, nil
	}

	// Tokens will not survive a restart
	slog.Warn("JWT_SECRET is not a PEM EC key, generating an ephemeral signing key")
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ECDSA key: %w", err)
	}
	return privateKey, nil
}
