package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionClaims wraps a server-side session id. The token only proves the
// id was issued by us; whether the session is still alive is decided by the
// session store.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

func GenerateSessionToken(sessionID string, issuedAt, expiresAt time.Time, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
		SessionID: sessionID,
	})

	return token.SignedString([]byte(secret))
}

// ValidateSessionToken verifies the signature of tokenString and returns the
// session id it carries. Expiry is not checked here: an authentic
// credential for an expired session must still reach the session store so
// the session can be removed there.
func ValidateSessionToken(tokenString, secret string) (string, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", errors.Join(ErrInvalidSessionToken, err)
	}

	if !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidSessionToken
	}

	return claims.SessionID, nil
}
