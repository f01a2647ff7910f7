// Package utils provides the token helpers shared by the auth and
// ticket surfaces: HS256 access tokens for login and signed order
// payloads for QR tickets.
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// AccessToken is a signed JWT access token along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for the given subject
// (the account email).  Claims are the standard sub, exp and iat.
func NewAccessToken(secret, subject string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// SignOrder encodes an order as an HS256-signed JWT.  The QR ticket
// endpoint renders this token so that gate scanners can verify an order
// offline with nothing but the shared secret.
func SignOrder(secret string, order *model.Order) (string, error) {
	claims := jwt.MapClaims{
		"id":       order.ID,
		"event_id": order.EventID,
		"seat_ids": order.SeatIDs,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
