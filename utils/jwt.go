package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var Secret = []byte("change-me-in-production")

func GenerateToken(userID uint, username string, isManager bool, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    userID,
		"username":   username,
		"is_manager": isManager,
		"exp":        time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(Secret)
}

func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return Secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
