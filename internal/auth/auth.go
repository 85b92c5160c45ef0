package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

const (
	APIKeyEnv     = "LINEAR_API_KEY"
	OAuthTokenEnv = "LINEAR_OAUTH_TOKEN"
	configDirName = "clinear"
	configFile    = "config.yaml"
)

var ErrNoCredentials = errors.New("no Linear credentials: pass --api-key or set " + APIKeyEnv)

// Credentials holds exactly one of an API key or an OAuth access token.
type Credentials struct {
	APIKey     string
	OAuthToken string
}

// FileConfig is the on-disk config file format.
type FileConfig struct {
	APIKey     string `yaml:"api_key"`
	OAuthToken string `yaml:"oauth_token"`
}

// Sources are the places credentials may come from, highest priority first:
// explicit flags, then environment, then the config file.
type Sources struct {
	APIKeyFlag     string
	OAuthTokenFlag string
	ConfigPath     string
	Getenv         func(string) string
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/clinear/config.yaml (or the OS equivalent).
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, configFile)
}

// LoadConfig reads the YAML config file. A missing file is not an error.
func LoadConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve picks credentials from the given sources. It is the only place the
// environment is consulted.
func Resolve(src Sources) (Credentials, error) {
	getenv := src.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if key := strings.TrimSpace(src.APIKeyFlag); key != "" {
		return Credentials{APIKey: key}, nil
	}
	if tok := strings.TrimSpace(src.OAuthTokenFlag); tok != "" {
		return Credentials{OAuthToken: tok}, nil
	}
	if key := strings.TrimSpace(getenv(APIKeyEnv)); key != "" {
		return Credentials{APIKey: key}, nil
	}
	if tok := strings.TrimSpace(getenv(OAuthTokenEnv)); tok != "" {
		return Credentials{OAuthToken: tok}, nil
	}

	cfg, err := LoadConfig(src.ConfigPath)
	if err != nil {
		return Credentials{}, err
	}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		return Credentials{APIKey: key}, nil
	}
	if tok := strings.TrimSpace(cfg.OAuthToken); tok != "" {
		return Credentials{OAuthToken: tok}, nil
	}

	return Credentials{}, ErrNoCredentials
}

// HTTPClient returns a client that authenticates every request. Personal API
// keys go in the Authorization header verbatim; OAuth tokens are sent as Bearer.
func HTTPClient(ctx context.Context, creds Credentials) (*http.Client, error) {
	switch {
	case creds.APIKey != "":
		return &http.Client{Transport: &apiKeyTransport{key: creds.APIKey, base: http.DefaultTransport}}, nil
	case creds.OAuthToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.OAuthToken})
		return oauth2.NewClient(ctx, ts), nil
	default:
		return nil, ErrNoCredentials
	}
}

type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", t.key)
	return t.base.RoundTrip(r)
}
