package auth

import (
	"errors"
	"net/http"

	"github.com/chasta/skyguard/internal/config"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticator(next http.Handler) http.Handler
}

const (
	LocalAuthentication string = "local"
	NoneAuthentication  string = "none"
)

func NewAuthenticator(authConfig config.Auth) (Authenticator, error) {
	zap.S().Named("auth").Infof("authentication: '%s'", authConfig.AuthenticationType)

	switch authConfig.AuthenticationType {
	case LocalAuthentication:
		if authConfig.Secret == "" {
			return nil, errors.New("local authentication requires a secret")
		}
		return NewLocalAuthenticator([]byte(authConfig.Secret))
	default:
		return NewNoneAuthenticator()
	}
}
