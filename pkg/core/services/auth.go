package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/inncontrol/pkg/clients/hotelapi"
)

// Authenticator exchanges credentials for a session token
type Authenticator interface {
	Login(ctx context.Context, username, password string) error
}

// SessionInfo exposes the current session
type SessionInfo interface {
	Claims() (*hotelapi.Claims, error)
	Clear() error
}

// Login signs in and returns the claims of the new token
func Login(ctx context.Context, auth Authenticator, session SessionInfo, logger *zap.Logger, username, password string) (*hotelapi.Claims, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	logger.Debug("Logging in", zap.String("username", username))

	if err := auth.Login(ctx, username, password); err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	claims, err := session.Claims()
	if err != nil {
		// Opaque tokens still work; only the display suffers
		logger.Debug("Token has no readable claims", zap.Error(err))
		return &hotelapi.Claims{Subject: username}, nil
	}
	if claims.Subject == "" {
		claims.Subject = username
	}

	logger.Info("Logged in", zap.String("username", claims.Subject))
	return claims, nil
}

// WhoAmI returns the claims of the current session
func WhoAmI(session SessionInfo) (*hotelapi.Claims, error) {
	claims, err := session.Claims()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return claims, nil
}

// Logout forgets the saved session
func Logout(session SessionInfo, logger *zap.Logger) error {
	if err := session.Clear(); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	logger.Info("Logged out")
	return nil
}
