// Package auth issues and parses the HS256 access tokens handed to
// volunteers on login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mercury/internal/common"
	"github.com/dmitrijs2005/mercury/internal/server/codes"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the volunteer identity alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	ID       int64  `json:"id"`
}

// Identity is what a valid token proves.
type Identity struct {
	ID       int64
	Username string
}

var now = time.Now

func GenerateToken(id Identity, secretKey []byte, validity time.Duration) (string, error) {
	issued := now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(validity)),
			Subject:   fmt.Sprint(id.ID),
		},
		Username: id.Username,
		ID:       id.ID,
	})

	return token.SignedString(secretKey)
}

// ParseToken validates tokenString and returns the identity it carries.
// Expired tokens yield common.ErrTokenExpired; any other defect, including a
// subject that is not a positive account id, yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.Username == "" {
		return Identity{}, common.ErrInvalidToken
	}

	// The subject is the account id in text form and must agree with the id claim.
	id, err := codes.ParseAccountID(claims.Subject)
	if err != nil || id != claims.ID {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{ID: claims.ID, Username: claims.Username}, nil
}
