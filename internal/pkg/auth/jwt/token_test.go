package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestGenerateAndParseToken(t *testing.T) {
	payload := &Payload{
		TwitchID:    "12345",
		Login:       "streamer",
		DisplayName: "Streamer",
	}

	token, err := GenerateToken(payload, testKey(), UserIdentityExpiration)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token, testKey())
	require.NoError(t, err)

	assert.Equal(t, "12345", parsed.TwitchID)
	assert.Equal(t, "streamer", parsed.Login)
	assert.Equal(t, "Streamer", parsed.DisplayName)
	assert.Equal(t, TokenIssuer, parsed.Issuer)
	assert.Greater(t, parsed.ExpiresAt, time.Now().Unix())
}

func TestParseTokenWrongKey(t *testing.T) {
	token, err := GenerateToken(&Payload{DisplayName: "x"}, testKey(), UserIdentityExpiration)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("another-key-entirely-0000000000!"))
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(&Payload{DisplayName: "x"}, testKey(), -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testKey())
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testKey())
	assert.Error(t, err)
}
