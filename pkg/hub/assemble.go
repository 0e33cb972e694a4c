package hub

import (
	"fmt"

	"github.com/doodlesbykumbi/hubconf/pkg/config"
)

// assembler records every assignment it makes so the resulting Config can
// report its attributes in order.
type assembler struct {
	r     *config.Resolver
	attrs []Attribute
}

func (a *assembler) record(name string, value any, source config.Source, key string) {
	a.attrs = append(a.attrs, Attribute{Name: name, Value: copyValue(value), Source: source, EnvKey: key})
}

func literal[T any](a *assembler, name string, value T) T {
	a.record(name, value, config.SourceLiteral, "")
	return value
}

// optional assigns value only when it is non-zero
func optional(a *assembler, name string, value string) string {
	if value == "" {
		return ""
	}
	return literal(a, name, value)
}

func resolved(a *assembler, name, key, def string) string {
	value, source := a.r.Resolve(key, def)
	a.record(name, value, source, key)
	return value
}

// Assemble builds the configuration for variant from env. A nil env reads
// the process environment.
func Assemble(variant Variant, env config.Env) (*Config, error) {
	if !variant.IsAVariant() {
		return nil, fmt.Errorf("unknown variant %s", variant)
	}

	a := &assembler{r: config.NewResolver(env)}
	if err := a.r.CheckEncoding(EnvNotebookImage, EnvNotebookDir, EnvAdmin); err != nil {
		return nil, err
	}
	p := variant.profile()
	cfg := &Config{Variant: variant}
	hub := &cfg.JupyterHub
	proxy := &cfg.TraefikFileProviderProxy
	spawner := &cfg.DockerSpawner

	hub.SpawnerClass = literal(a, "JupyterHub.spawner_class", SpawnerClassDocker)

	image, err := a.r.Require(EnvNotebookImage)
	if err != nil {
		return nil, err
	}
	a.record("DockerSpawner.image", image, config.SourceEnvironment, EnvNotebookImage)
	spawner.Image = image

	hub.BindURL = literal(a, "JupyterHub.bind_url", p.bindURL)
	hub.CleanupProxy = literal(a, "JupyterHub.cleanup_proxy", true)
	if p.cleanupServers != nil {
		hub.CleanupServers = boolPtr(literal(a, "JupyterHub.cleanup_servers", *p.cleanupServers))
	}
	hub.HubBindURL = literal(a, "JupyterHub.hub_bind_url", "http://hub:8000")
	hub.HubRoutespec = literal(a, "JupyterHub.hub_routespec", p.hubRoutespec)
	hub.SubdomainHost = literal(a, "JupyterHub.subdomain_host", p.subdomainHost)
	hub.LogLevel = literal(a, "JupyterHub.log_level", "DEBUG")
	hub.ProxyClass = literal(a, "JupyterHub.proxy_class", ProxyClassTraefikFile)

	// Traefik is started by docker compose, not by the hub
	proxy.ShouldStart = literal(a, "TraefikFileProviderProxy.should_start", false)
	proxy.DynamicConfigFile = literal(a, "TraefikFileProviderProxy.dynamic_config_file", "/var/run/traefik/jupyterhub.yaml")
	proxy.TraefikAPIURL = literal(a, "TraefikFileProviderProxy.traefik_api_url", p.traefikAPIURL)
	proxy.TraefikAPIValidateCert = literal(a, "TraefikFileProviderProxy.traefik_api_validate_cert", false)
	proxy.TraefikAPIUsername = literal(a, "TraefikFileProviderProxy.traefik_api_username", "admin")
	proxy.TraefikAPIPassword = literal(a, "TraefikFileProviderProxy.traefik_api_password", "password")
	proxy.TraefikEntrypoint = optional(a, "TraefikFileProviderProxy.traefik_entrypoint", p.traefikEntrypoint)

	notebookDir := resolved(a, "DockerSpawner.notebook_dir", EnvNotebookDir, DefaultNotebookDir)
	spawner.NotebookDir = notebookDir
	spawner.Volumes = literal(a, "DockerSpawner.volumes", map[string]string{VolumeNameTemplate: notebookDir})
	spawner.Remove = literal(a, "DockerSpawner.remove", true)
	spawner.NetworkName = literal(a, "DockerSpawner.network_name", "traefik_internal")

	hub.SSLCert = optional(a, "JupyterHub.ssl_cert", p.sslCert)
	hub.CookieSecretFile = optional(a, "JupyterHub.cookie_secret_file", p.cookieSecretFile)
	hub.DBURL = optional(a, "JupyterHub.db_url", p.dbURL)

	hub.AuthenticatorClass = literal(a, "JupyterHub.authenticator_class", AuthenticatorClassNative)
	cfg.NativeAuthenticator.OpenSignup = literal(a, "NativeAuthenticator.open_signup", true)

	if admin, ok := a.r.Lookup(EnvAdmin); ok {
		cfg.Authenticator.AdminUsers = []string{admin}
		a.record("Authenticator.admin_users", cfg.Authenticator.AdminUsers, config.SourceEnvironment, EnvAdmin)
	}

	cfg.attributes = a.attrs
	return cfg, nil
}
