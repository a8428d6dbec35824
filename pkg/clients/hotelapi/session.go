package hotelapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	tokenDirName   = ".inncontrol/tokens"
	tokenFilePerms = 0600 // Read/write for owner only
	tokenDirPerms  = 0700 // Read/write/execute for owner only
	tokenPath      = "/token"
)

// TokenStore persists the bearer token between runs
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(token *oauth2.Token) error
	Delete() error
}

// FileTokenStore keeps one token file per environment under the home directory
type FileTokenStore struct {
	Path string
}

// NewFileTokenStore returns a store at ~/.inncontrol/tokens/token-<env>.json
func NewFileTokenStore(env string) (*FileTokenStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return &FileTokenStore{
		Path: filepath.Join(homeDir, tokenDirName, fmt.Sprintf("token-%s.json", env)),
	}, nil
}

// Load returns nil if the file doesn't exist (not an error - just means no saved session)
func (s *FileTokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

func (s *FileTokenStore) Save(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.Path, data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Delete() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the token for the lifetime of the process
type MemoryTokenStore struct {
	mu    sync.Mutex
	token *oauth2.Token
}

func (s *MemoryTokenStore) Load() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	return nil
}

// Session holds the bearer token used by every request. It is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	token *oauth2.Token
	store TokenStore
}

// NewSession creates a session backed by store. A nil store keeps the token in memory.
func NewSession(store TokenStore) *Session {
	if store == nil {
		store = &MemoryTokenStore{}
	}
	return &Session{store: store}
}

// Restore loads a previously saved token. An expired token is discarded.
func (s *Session) Restore() error {
	token, err := s.store.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != nil && token.Valid() {
		s.token = token
	}
	return nil
}

// Set stores a freshly issued token. Expiry is taken from the JWT when the
// token response did not carry one.
func (s *Session) Set(token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("empty access token")
	}
	if token.Expiry.IsZero() {
		if claims, err := parseClaims(token.AccessToken); err == nil && !claims.ExpiresAt.IsZero() {
			token.Expiry = claims.ExpiresAt
		}
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear forgets the token in memory and in the store
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = nil
	s.mu.Unlock()

	if err := s.store.Delete(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Token returns the current token or ErrNotAuthenticated
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil || !s.token.Valid() {
		return nil, ErrNotAuthenticated
	}
	return s.token, nil
}

// Claims is what the console shows about the logged-in user
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Claims decodes the subject and expiry of the current token. The signature
// is not verified; the backend does that on every request.
func (s *Session) Claims() (*Claims, error) {
	token, err := s.Token()
	if err != nil {
		return nil, err
	}
	return parseClaims(token.AccessToken)
}

func parseClaims(accessToken string) (*Claims, error) {
	var registered jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &registered); err != nil {
		return nil, fmt.Errorf("failed to decode access token: %w", err)
	}

	claims := &Claims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}

// PasswordLogin exchanges username and password for a bearer token at /token
// (OAuth2 password grant, form-encoded)
func PasswordLogin(ctx context.Context, httpClient *http.Client, baseURL, username, password string) (*oauth2.Token, error) {
	cfg := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  strings.TrimRight(baseURL, "/") + tokenPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}

	token, err := cfg.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, newAPIError(http.MethodPost, tokenPath, retrieveErr.Response.StatusCode, retrieveErr.Body)
		}
		var urlErr *url.Error
		var netErr net.Error
		if errors.As(err, &urlErr) || errors.As(err, &netErr) {
			return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
		}
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	return token, nil
}
