// ABOUTME: Resolves the outbound proxy from the environment on every request
// ABOUTME: Honours HTTPS_PROXY, HTTP_PROXY and NO_PROXY without ever failing a call

package proxy

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/http/httpproxy"

	"mentions-api/core/interfaces"
)

// Variables are checked in this order; the first non-empty one wins
var proxyVariables = []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"}

var noProxyVariables = []string{"NO_PROXY", "no_proxy"}

// Resolver reads proxy settings at call time so changes to the environment
// apply to the next outbound request without a restart
type Resolver struct {
	logger interfaces.Logger
	getenv func(string) string
}

// NewResolver creates a resolver reading the process environment
func NewResolver(logger interfaces.Logger) *Resolver {
	return &Resolver{logger: logger, getenv: os.Getenv}
}

// Resolve returns the configured proxy, if any. Invalid values are logged
// and treated as no proxy.
func (r *Resolver) Resolve() (*url.URL, bool) {
	raw := firstSet(r.getenv, proxyVariables)
	if raw == "" {
		return nil, false
	}

	u, err := parseProxy(raw)
	if err != nil {
		r.warn("Ignoring invalid proxy setting", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}

	r.debug("Using outbound proxy", map[string]interface{}{
		"proxy": u.Redacted(),
	})
	return u, true
}

// ProxyFunc returns a function suitable for http.Transport.Proxy.
// The environment is re-read for every request.
func (r *Resolver) ProxyFunc() func(*http.Request) (*url.URL, error) {
	return func(req *http.Request) (*url.URL, error) {
		u, ok := r.Resolve()
		if !ok {
			return nil, nil
		}

		cfg := httpproxy.Config{
			HTTPProxy:  u.String(),
			HTTPSProxy: u.String(),
			NoProxy:    firstSet(r.getenv, noProxyVariables),
		}

		proxyURL, err := cfg.ProxyFunc()(req.URL)
		if err != nil {
			r.warn("Proxy selection failed, connecting directly", map[string]interface{}{
				"error": err.Error(),
			})
			return nil, nil
		}
		if proxyURL == nil {
			r.debug("Bypassing proxy for host", map[string]interface{}{
				"host": req.URL.Hostname(),
			})
		}
		return proxyURL, nil
	}
}

func parseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		// Accept bare host:port values the way curl does
		if u2, err2 := url.Parse("http://" + raw); err2 == nil && u2.Host != "" {
			return u2, nil
		}
		if err == nil {
			err = errInvalidProxy
		}
		return nil, err
	}
	return u, nil
}

var errInvalidProxy = errors.New("proxy URL needs a scheme and host")

func firstSet(getenv func(string) string, names []string) string {
	for _, name := range names {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

func (r *Resolver) debug(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, fields)
	}
}

func (r *Resolver) warn(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Warn(msg, fields)
	}
}
