package lists

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ServicePath is the Lists web service endpoint relative to a site URL.
const ServicePath = "/_vti_bin/Lists.asmx"

// Config contains configuration for the Lists web service client.
type Config struct {
	// SiteURL is the site hosting the lists, e.g. http://server/sites/test
	SiteURL string

	// Username and Password are sent as HTTP basic credentials when set
	Username string
	Password string

	// Timeout is the HTTP request timeout
	// Default: 30 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of attempts for network failures
	// Default: 3
	MaxRetries int

	// RetryBackoff is multiplied by the attempt number between retries
	// Default: 500 milliseconds
	RetryBackoff time.Duration
}

// Validate checks that required config fields are set.
func (c *Config) Validate() error {
	if c.SiteURL == "" {
		return fmt.Errorf("SiteURL is required")
	}

	u, err := url.Parse(c.SiteURL)
	if err != nil {
		return fmt.Errorf("SiteURL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("SiteURL must use http or https, got %q", u.Scheme)
	}

	if c.Password != "" && c.Username == "" {
		return fmt.Errorf("Username is required when Password is set")
	}

	return nil
}

// SetDefaults fills in default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}

	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}

	if c.RetryBackoff == 0 {
		c.RetryBackoff = 500 * time.Millisecond
	}
}

// Endpoint returns the Lists web service URL for the configured site.
func (c *Config) Endpoint() string {
	return strings.TrimRight(c.SiteURL, "/") + ServicePath
}
