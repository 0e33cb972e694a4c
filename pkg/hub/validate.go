package hub

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// LogLevels are the level names the hub accepts
var LogLevels = []string{"DEBUG", "INFO", "WARN", "ERROR", "CRITICAL"}

// Validate checks the assembled values the collaborators would otherwise
// reject at their own startup. All problems are reported together.
func (c *Config) Validate() error {
	var result *multierror.Error

	urls := []struct {
		name  string
		value string
	}{
		{"JupyterHub.bind_url", c.JupyterHub.BindURL},
		{"JupyterHub.hub_bind_url", c.JupyterHub.HubBindURL},
		{"JupyterHub.subdomain_host", c.JupyterHub.SubdomainHost},
		{"TraefikFileProviderProxy.traefik_api_url", c.TraefikFileProviderProxy.TraefikAPIURL},
	}
	for _, u := range urls {
		if err := validateURL(u.value); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid %s value %q: %w", u.name, u.value, err))
		}
	}

	if c.JupyterHub.HubRoutespec == "" {
		result = multierror.Append(result, fmt.Errorf("JupyterHub.hub_routespec must not be empty"))
	}

	if !validLogLevel(c.JupyterHub.LogLevel) {
		result = multierror.Append(result, fmt.Errorf("invalid JupyterHub.log_level: %s", c.JupyterHub.LogLevel))
	}

	if c.DockerSpawner.Image == "" {
		result = multierror.Append(result, fmt.Errorf("DockerSpawner.image must not be empty"))
	}
	if !strings.HasPrefix(c.DockerSpawner.NotebookDir, "/") {
		result = multierror.Append(result, fmt.Errorf("DockerSpawner.notebook_dir must be an absolute path: %s", c.DockerSpawner.NotebookDir))
	}
	for name := range c.DockerSpawner.Volumes {
		if !strings.Contains(name, "{username}") {
			result = multierror.Append(result, fmt.Errorf("volume %s is shared between users; expected a {username} placeholder", name))
		}
	}

	if c.JupyterHub.DBURL != "" && !strings.Contains(c.JupyterHub.DBURL, "://") {
		result = multierror.Append(result, fmt.Errorf("invalid JupyterHub.db_url: %s", c.JupyterHub.DBURL))
	}

	return result.ErrorOrNil()
}

func validateURL(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// validLogLevel accepts a level name or one of the numeric levels 0-50
func validLogLevel(level string) bool {
	for _, l := range LogLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	n, err := strconv.Atoi(level)
	return err == nil && n >= 0 && n <= 50 && n%10 == 0
}
