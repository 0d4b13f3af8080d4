package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateDeviceToken issues the HS256 bearer token a device uses for all
// API calls after exchanging the app key.
func GenerateDeviceToken(deviceID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"deviceId": deviceID,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
