package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "ops", "admin", time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Scope)
	assert.Equal(t, "ops", claims.Subject)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "ops", "admin", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("other", token)
	assert.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", "ops", "admin", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestToInt64List(t *testing.T) {
	ids, err := ToInt64List([]string{"1,2", " 3 ", ""})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = ToInt64List([]string{"1,x"})
	assert.Error(t, err)
}

func TestIsBlank(t *testing.T) {
	blank, text := "  ", "x"
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(&blank))
	assert.False(t, IsBlank(&text))
}
