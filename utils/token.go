package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/raushankrgupta/glory-storefront/config"
	"github.com/raushankrgupta/glory-storefront/models"
)

// GenerateToken issues a provider token for the identity, valid for ttl.
func GenerateToken(identity models.Identity, ttl time.Duration) (string, error) {
	jwtSecret := []byte(config.JWTSecret)
	if len(jwtSecret) == 0 {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}

	claims := jwt.MapClaims{
		"user_id": identity.UserID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	if identity.Email != "" {
		claims["email"] = identity.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken parses the token and returns the identity it carries.
func ValidateToken(tokenString string) (*models.Identity, error) {
	jwtSecret := []byte(config.JWTSecret)
	if len(jwtSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, errors.New("token has no user_id")
	}
	email, _ := claims["email"].(string)

	return &models.Identity{UserID: userID, Email: email}, nil
}
