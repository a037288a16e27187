package utils

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	uid := uuid.New()
	tok, claims, err := GenerateToken(uid, "Koch", "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	parsed, err := ParseToken(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, uid.String(), parsed.UserID)
	assert.Equal(t, "Koch", parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)

	_, err = ParseToken(tok, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tok, _, err := GenerateToken(uuid.New(), "Gast", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(tok, "secret")
	assert.Error(t, err)
}

func TestGenerateResetCode(t *testing.T) {
	code, err := GenerateResetCode(8)
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.Contains(t, resetCodeCharset, string(r))
	}
}

func TestDecodeDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	ct, data, err := DecodeDataURL("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, ".png", ExtensionFor(ct))

	_, _, err = DecodeDataURL("data:text/plain;base64," + payload)
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	_, _, err = DecodeDataURL("not a data url")
	assert.ErrorIs(t, err, ErrInvalidDataURL)
}

func TestDecodeDataURLRejectsUnknownTypes(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("x"))

	for _, ct := range []string{"image/../../../../escaped", "image/svg+xml", "image/", "image/png/../x"} {
		_, _, err := DecodeDataURL("data:" + ct + ";base64," + payload)
		assert.ErrorIs(t, err, ErrUnsupportedImageType, ct)
		assert.Empty(t, ExtensionFor(ct), ct)
	}

	ct, _, err := DecodeDataURL("data:image/WEBP;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, ".webp", ExtensionFor(ct))
}
