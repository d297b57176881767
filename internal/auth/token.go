package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidToken covers every verification failure: malformed token,
// bad signature, wrong signing method, expiry, missing claim.
var ErrInvalidToken = errors.New("invalid token")

// IssueToken signs an HS256 JWT carrying the user id, valid for ttl
// from now.
func IssueToken(userID primitive.ObjectID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken checks signature and expiry and returns the user id the
// token was issued for. It never panics; every failure is ErrInvalidToken.
func VerifyToken(raw, secret string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userIDValue) == "" {
		return primitive.NilObjectID, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return userID, nil
}
