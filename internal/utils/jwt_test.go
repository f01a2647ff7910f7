package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
)

func parse(t *testing.T, secret, token string) jwt.MapClaims {
	t.Helper()
	tok, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)
	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestNewAccessToken(t *testing.T) {
	at, err := NewAccessToken("secret", "demo@example.com", 60)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), at.Exp, 5*time.Second)

	claims := parse(t, "secret", at.Token)
	assert.Equal(t, "demo@example.com", claims["sub"])

	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err, "token must not verify under a different secret")
}

func TestSignOrder(t *testing.T) {
	order := &model.Order{ID: 3, EventID: 1, SeatIDs: []uint64{4, 9}}
	token, err := SignOrder("secret", order)
	require.NoError(t, err)

	claims := parse(t, "secret", token)
	assert.EqualValues(t, 3, claims["id"])
	assert.EqualValues(t, 1, claims["event_id"])
	seatIDs, ok := claims["seat_ids"].([]interface{})
	require.True(t, ok)
	require.Len(t, seatIDs, 2)
	assert.EqualValues(t, 4, seatIDs[0])
	assert.EqualValues(t, 9, seatIDs[1])
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("demo", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "demo"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
