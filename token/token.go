// Package token issues and verifies the signed bearer tokens used by the API
// and the websocket handshake.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/abhinandan-jain01/nearmart/apperrors"
)

type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type Maker struct {
	secret []byte
	ttl    time.Duration
}

func NewMaker(secret string, ttl time.Duration) *Maker {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Maker{secret: []byte(secret), ttl: ttl}
}

func (m *Maker) Generate(userID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Maker) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperrors.Unauthorized("token verification failed")
	}
	if claims.UserID == "" {
		return nil, apperrors.Unauthorized("user ID not found in token")
	}
	return claims, nil
}
