package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastane/labsamples/internal/models"
)

const (
	testKey      = "test-signing-key"
	testIssuer   = "labsamples"
	testAudience = "labsamples-mobile"
)

func testConfig() *Config {
	return &Config{
		SigningKey:            testKey,
		Issuer:                testIssuer,
		Audience:              testAudience,
		AccessTokenTTLSeconds: 300,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "testuser",
		Email:    "test@example.com",
	}
}

func TestNewSignerMissingKey(t *testing.T) {
	_, err := NewSigner(&Config{Issuer: testIssuer, Audience: testAudience})
	assert.Error(t, err)
}

func TestIssueAndParseActive(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)

	tok, err := signer.IssueAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := signer.ParseActive(tok)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "testuser", claims.Name)
	assert.NotEmpty(t, claims.ID, "jti claim should be set")

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestIssuedTokensHaveUniqueIDs(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)

	t1, err := signer.IssueAccessToken(testUser())
	require.NoError(t, err)
	t2, err := signer.IssueAccessToken(testUser())
	require.NoError(t, err)

	c1, err := signer.ParseActive(t1)
	require.NoError(t, err)
	c2, err := signer.ParseActive(t2)
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID)
}

// signExpired mints a token whose lifetime has already elapsed, signed
// with the given key.
func signExpired(t *testing.T, key string, subject string) string {
	t.Helper()

	claims := &Claims{
		Email: "test@example.com",
		Name:  "testuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-30 * time.Minute)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func TestParseActiveRejectsExpiredToken(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)

	expired := signExpired(t, testKey, "42")

	_, err = signer.ParseActive(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseActiveRejectsWrongIssuerOrAudience(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)

	mint := func(issuer, audience string) string {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "42",
				Issuer:    issuer,
				Audience:  jwt.ClaimStrings{audience},
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
			},
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
		require.NoError(t, err)
		return s
	}

	_, err = signer.ParseActive(mint("other-issuer", testAudience))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = signer.ParseActive(mint(testIssuer, "other-audience"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredAcceptsElapsedLifetime(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)

	expired := signExpired(t, testKey, "42")

	claims, err := signer.ParseExpired(expired)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseExpiredRejectsWrongKey(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)

	forged := signExpired(t, "another-signing-key", "42")

	_, err = signer.ParseExpired(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredRejectsMalformedToken(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err = signer.ParseExpired(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestParseExpiredRejectsUnsignedToken(t *testing.T) {
	signer, err := NewSigner(testConfig())
	require.NoError(t, err)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "42"},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = signer.ParseExpired(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaimsUserIDRejectsNonNumericSubject(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-number"},
	}
	_, err := claims.UserID()
	assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	t1, err := NewRefreshToken()
	require.NoError(t, err)
	t2, err := NewRefreshToken()
	require.NoError(t, err)

	// base64 of 32 bytes is 44 chars
	assert.Len(t, t1, 44)
	assert.NotEqual(t, t1, t2)
}
