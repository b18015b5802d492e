// Package auth turns access tokens issued by the dashboard backend into
// session records.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/models"
	"github.com/dmitrijs2005/vigilkeeper/internal/common"
)

// Claims carries the standard claims plus the user id and display name.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Name   string `json:"name"`
}

func IssueToken(userID, fullName string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Name:   fullName,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// SessionFromToken validates tokenString and maps its claims to a session.
// The user id comes from UserID, or from sub when UserID is empty.
func SessionFromToken(tokenString string, secretKey []byte) (models.Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return models.Session{}, common.ErrInvalidToken
	}

	s := models.Session{UserID: claims.UserID, FullName: claims.Name}
	if s.UserID == "" {
		s.UserID = claims.Subject
	}
	if !s.Valid() {
		return models.Session{}, fmt.Errorf("%w: no user id", common.ErrInvalidToken)
	}
	return s, nil
}
