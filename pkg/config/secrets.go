// ABOUTME: Credential lookups that re-read the environment on every call
// ABOUTME: Rotating a key takes effect on the next request without a restart

package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Secret names; each has a VITE_ prefixed alias for deployments that share
// an environment file with the front end
const (
	SearchAPIKeyName = "TAVILY_API_KEY"
	LLMAPIKeyName    = "GROQ_API_KEY"
	AccessCodeName   = "ACCESS_CODE"
)

// Secrets implements interfaces.Secrets over viper's environment binding
type Secrets struct {
	v *viper.Viper
}

// NewSecrets creates a reader over the process environment and, optionally,
// a config file. Values are never cached.
func NewSecrets(configFile string) *Secrets {
	v := viper.New()
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		_ = v.ReadInConfig()
	}
	return &Secrets{v: v}
}

// SearchAPIKey returns the search provider key, or "" when unset
func (s *Secrets) SearchAPIKey() string {
	return s.lookup(SearchAPIKeyName)
}

// LLMAPIKey returns the summarization provider key, or "" when unset
func (s *Secrets) LLMAPIKey() string {
	return s.lookup(LLMAPIKeyName)
}

// AccessCode returns the shared access code, or "" when the gate is open
func (s *Secrets) AccessCode() string {
	return s.lookup(AccessCodeName)
}

func (s *Secrets) lookup(name string) string {
	if v := strings.TrimSpace(s.v.GetString(strings.ToLower(name))); v != "" {
		return v
	}
	return strings.TrimSpace(s.v.GetString("vite_" + strings.ToLower(name)))
}
