package hub

import (
	"strings"

	"github.com/doodlesbykumbi/hubconf/pkg/config"
)

// Environment variables read by the assembler
const (
	EnvNotebookImage = "DOCKER_NOTEBOOK_IMAGE"
	EnvNotebookDir   = "DOCKER_NOTEBOOK_DIR"
	EnvAdmin         = "JUPYTERHUB_ADMIN"
)

const (
	DefaultNotebookDir = "/home/jovyan/work"

	// VolumeNameTemplate names each user's persistent volume. The spawner
	// expands {username} when it creates the container.
	VolumeNameTemplate = "jupyterhub-user-{username}"

	// SSLCertExternallyManaged marks that TLS terminates at the proxy. The
	// hub only checks that ssl_cert is non-empty before keeping https
	// redirects.
	SSLCertExternallyManaged = "externally managed"

	SpawnerClassDocker       = "dockerspawner.DockerSpawner"
	ProxyClassTraefikFile    = "traefik_file"
	AuthenticatorClassNative = "nativeauthenticator.NativeAuthenticator"
)

// JupyterHub holds the hosting service settings, including how it reaches
// the proxy.
type JupyterHub struct {
	SpawnerClass       string `yaml:"spawner_class" json:"spawner_class"`
	BindURL            string `yaml:"bind_url" json:"bind_url"`
	CleanupProxy       bool   `yaml:"cleanup_proxy" json:"cleanup_proxy"`
	CleanupServers     *bool  `yaml:"cleanup_servers,omitempty" json:"cleanup_servers,omitempty"`
	HubBindURL         string `yaml:"hub_bind_url" json:"hub_bind_url"`
	HubRoutespec       string `yaml:"hub_routespec" json:"hub_routespec"`
	SubdomainHost      string `yaml:"subdomain_host" json:"subdomain_host"`
	LogLevel           string `yaml:"log_level" json:"log_level"`
	ProxyClass         string `yaml:"proxy_class" json:"proxy_class"`
	SSLCert            string `yaml:"ssl_cert,omitempty" json:"ssl_cert,omitempty"`
	CookieSecretFile   string `yaml:"cookie_secret_file,omitempty" json:"cookie_secret_file,omitempty"`
	DBURL              string `yaml:"db_url,omitempty" json:"db_url,omitempty"`
	AuthenticatorClass string `yaml:"authenticator_class" json:"authenticator_class"`
}

// TraefikFileProviderProxy configures the proxy class that writes Traefik's
// dynamic configuration file.
type TraefikFileProviderProxy struct {
	ShouldStart            bool   `yaml:"should_start" json:"should_start"`
	DynamicConfigFile      string `yaml:"dynamic_config_file" json:"dynamic_config_file"`
	TraefikAPIURL          string `yaml:"traefik_api_url" json:"traefik_api_url"`
	TraefikAPIValidateCert bool   `yaml:"traefik_api_validate_cert" json:"traefik_api_validate_cert"`
	TraefikAPIUsername     string `yaml:"traefik_api_username" json:"traefik_api_username"`
	TraefikAPIPassword     string `yaml:"traefik_api_password" json:"traefik_api_password"`
	TraefikEntrypoint      string `yaml:"traefik_entrypoint,omitempty" json:"traefik_entrypoint,omitempty"`
	// TraefikCertResolver is always left unset. Neither variant lets the
	// proxy request certificates; TLS is terminated in front of Traefik.
	TraefikCertResolver string `yaml:"traefik_cert_resolver,omitempty" json:"traefik_cert_resolver,omitempty"`
}

// DockerSpawner configures the per-user containers
type DockerSpawner struct {
	Image       string            `yaml:"image" json:"image"`
	NotebookDir string            `yaml:"notebook_dir" json:"notebook_dir"`
	Volumes     map[string]string `yaml:"volumes" json:"volumes"`
	Remove      bool              `yaml:"remove" json:"remove"`
	NetworkName string            `yaml:"network_name" json:"network_name"`
}

type NativeAuthenticator struct {
	OpenSignup bool `yaml:"open_signup" json:"open_signup"`
}

type Authenticator struct {
	AdminUsers []string `yaml:"admin_users,omitempty" json:"admin_users,omitempty"`
}

// Config is the assembled deployment configuration. It is populated once by
// Assemble and must not be modified afterwards; accessors hand out copies.
type Config struct {
	Variant                  Variant                  `yaml:"variant" json:"variant"`
	JupyterHub               JupyterHub               `yaml:"JupyterHub" json:"JupyterHub"`
	TraefikFileProviderProxy TraefikFileProviderProxy `yaml:"TraefikFileProviderProxy" json:"TraefikFileProviderProxy"`
	DockerSpawner            DockerSpawner            `yaml:"DockerSpawner" json:"DockerSpawner"`
	NativeAuthenticator      NativeAuthenticator      `yaml:"NativeAuthenticator" json:"NativeAuthenticator"`
	Authenticator            Authenticator            `yaml:"Authenticator,omitempty" json:"Authenticator"`

	attributes []Attribute
}

// Attribute is one assigned setting, in assembly order
type Attribute struct {
	// Name is the dotted path, e.g. DockerSpawner.image
	Name   string        `json:"name"`
	Value  any           `json:"value"`
	Source config.Source `json:"source"`
	// EnvKey is the variable the value was looked up from, if any
	EnvKey string `json:"env,omitempty"`
}

// Section returns the collaborator namespace of the attribute
func (a Attribute) Section() string {
	section, _, _ := strings.Cut(a.Name, ".")
	return section
}

// Field returns the attribute name within its section
func (a Attribute) Field() string {
	_, field, _ := strings.Cut(a.Name, ".")
	return field
}

// Secret reports whether the value should be masked in human-readable output
func (a Attribute) Secret() bool {
	return strings.HasSuffix(a.Name, "_password")
}

// Attributes returns every assigned setting in assembly order
func (c *Config) Attributes() []Attribute {
	out := make([]Attribute, len(c.attributes))
	for i, a := range c.attributes {
		a.Value = copyValue(a.Value)
		out[i] = a
	}
	return out
}

// Get returns the attribute with the given dotted path
func (c *Config) Get(name string) (Attribute, bool) {
	for _, a := range c.attributes {
		if a.Name == name {
			a.Value = copyValue(a.Value)
			return a, true
		}
	}
	return Attribute{}, false
}

// IsSet reports whether the assembler assigned the named setting
func (c *Config) IsSet(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Admins returns a copy of the administrators list, nil when unset
func (c *Config) Admins() []string {
	if c.Authenticator.AdminUsers == nil {
		return nil
	}
	return append([]string(nil), c.Authenticator.AdminUsers...)
}

// Volumes returns a copy of the spawner's volume mounts
func (c *Config) Volumes() map[string]string {
	out := make(map[string]string, len(c.DockerSpawner.Volumes))
	for k, v := range c.DockerSpawner.Volumes {
		out[k] = v
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out
	default:
		return v
	}
}
