package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/constants"
	"github.com/spf13/viper"
)

type AuthTokenWrapper struct {
	Secret string `json:"secret"`
	jwt.StandardClaims
}

func GenerateAuthToken(wrapper *AuthTokenWrapper) (string, error) {
	wrapper.IssuedAt = time.Now().Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper)
	return token.SignedString([]byte(viper.GetString(constants.ViperSecretKey)))
}

func ParseAuthToken(tokenString string) (*AuthTokenWrapper, error) {
	wrapper := new(AuthTokenWrapper)
	_, err := jwt.ParseWithClaims(tokenString, wrapper, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(viper.GetString(constants.ViperSecretKey)), nil
	})
	if err != nil {
		return nil, constants.ErrUnauthorized
	}

	return wrapper, nil
}
