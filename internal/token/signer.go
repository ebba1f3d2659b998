// Package token issues and validates the HMAC-signed access tokens and the
// opaque refresh-token secrets.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dcastane/labsamples/internal/models"
)

// ErrInvalidToken covers every validation failure: bad signature, wrong
// algorithm, malformed token, or (for active validation) expired / wrong
// issuer / wrong audience. Callers get no finer detail.
var ErrInvalidToken = errors.New("invalid token")

type Config struct {
	// SigningKey is the symmetric HS256 key. The process must not start
	// without it; NewSigner rejects an empty key.
	SigningKey string `yaml:"signing_key"`

	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`

	// AccessTokenTTLSeconds defaults to 300. The short lifetime is
	// intentional, clients are expected to refresh often.
	AccessTokenTTLSeconds int `yaml:"access_token_ttl_seconds"`

	// RefreshTokenTTLSeconds defaults to 86400 (1 day).
	RefreshTokenTTLSeconds int `yaml:"refresh_token_ttl_seconds"`
}

func (c *Config) AccessTokenTTL() time.Duration {
	if c.AccessTokenTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.AccessTokenTTLSeconds) * time.Second
}

func (c *Config) RefreshTokenTTL() time.Duration {
	if c.RefreshTokenTTLSeconds <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.RefreshTokenTTLSeconds) * time.Second
}

// Claims carried by an access token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user id.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

type Signer struct {
	config *Config
	key    []byte
}

func NewSigner(config *Config) (*Signer, error) {
	if config.SigningKey == "" {
		return nil, errors.New("signing key is missing, the service cannot function without it")
	}
	return &Signer{
		config: config,
		key:    []byte(config.SigningKey),
	}, nil
}

// IssueAccessToken mints a short-lived HS256 token for the user with
// sub, jti, email and name claims.
func (s *Signer) IssueAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: user.Email,
		Name:  user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenTTL())),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// ParseActive fully validates a token: signature, issuer, audience and
// lifetime with zero clock-skew tolerance.
func (s *Signer) ParseActive(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithAudience(s.config.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseExpired validates the signature and algorithm only, ignoring
// expiry, issuer and audience. The refresh flow needs to extract the
// subject from a token that has already expired while still proving the
// caller once held a validly-signed one.
func (s *Signer) ParseExpired(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Signer) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return s.key, nil
}

// NewRefreshToken returns base64 of 32 random bytes.
func NewRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
