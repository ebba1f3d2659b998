package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	gormlog "gorm.io/gorm/logger"

	"github.com/dcastane/labsamples/internal/gormw"
	"github.com/dcastane/labsamples/internal/models"
	"github.com/dcastane/labsamples/internal/token"
)

const (
	testSigningKey = "test-signing-key"
	testIssuer     = "labsamples"
	testAudience   = "labsamples-mobile"
)

func setupTestHandler(t *testing.T) (*Handler, *gormw.DB, *gin.Engine) {
	t.Helper()

	db, err := gormw.Open(&gormw.Config{
		LogLevel: gormlog.Silent,
	})
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	config := &token.Config{
		SigningKey:             testSigningKey,
		Issuer:                 testIssuer,
		Audience:               testAudience,
		AccessTokenTTLSeconds:  300,
		RefreshTokenTTLSeconds: 3600,
	}

	handler, err := NewHandler(config, db)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterHandlers(router.Group("/"))

	return handler, db, router
}

func createTestUser(t *testing.T, db *gormw.DB, email, password string) *models.User {
	t.Helper()

	user := &models.User{
		Username: "testuser",
		Email:    email,
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)
	return user
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func accessTokenFromBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		AccessToken string `json:"AccessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

// signExpiredWithKey mints a token for the user whose lifetime has
// already elapsed, signed with the given key.
func signExpiredWithKey(t *testing.T, user *models.User, key string) string {
	t.Helper()

	claims := &token.Claims{
		Email: user.Email,
		Name:  user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
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

// expiredAccessToken mints a validly-signed token for the user whose
// lifetime has already elapsed.
func expiredAccessToken(t *testing.T, h *Handler, user *models.User) string {
	t.Helper()

	s := signExpiredWithKey(t, user, testSigningKey)

	// sanity: full validation must reject it, signature-only must not
	_, err := h.signer.ParseActive(s)
	require.Error(t, err)
	_, err = h.signer.ParseExpired(s)
	require.NoError(t, err)

	return s
}
