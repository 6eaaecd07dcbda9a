package utils

import (
	"errors"
	"os"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte(jwtSecretFromEnv())

func jwtSecretFromEnv() string {
	if secret, exists := os.LookupEnv("JWT_SECRET"); exists {
		return secret
	}
	return "SECRET"
}

func GenerateToken(userID uuid.UUID, username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"user_id":  userID.String(),
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}

		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
