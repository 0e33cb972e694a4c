package hub

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/hubconf/pkg/config"
)

func env(kv ...string) config.Env {
	m := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return config.MapEnv(m)
}

func TestAssemble_MissingImage(t *testing.T) {
	tests := []struct {
		name string
		env  config.Env
	}{
		{"unset", env(EnvAdmin, "alice")},
		{"empty", env(EnvNotebookImage, "", EnvNotebookDir, "/custom/path")},
	}

	for _, tt := range tests {
		for _, variant := range VariantValues() {
			t.Run(tt.name+"/"+variant.String(), func(t *testing.T) {
				cfg, err := Assemble(variant, tt.env)
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.True(t, errors.Is(err, config.ErrMissingRequiredInput))

				var missing *config.MissingRequiredInputError
				require.True(t, errors.As(err, &missing))
				assert.Equal(t, EnvNotebookImage, missing.Key)
			})
		}
	}
}

func TestAssemble_NotebookDir(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		cfg, err := Assemble(VariantTraefik, env(EnvNotebookImage, "myimage:latest"))
		require.NoError(t, err)
		assert.Equal(t, "/home/jovyan/work", cfg.DockerSpawner.NotebookDir)
		assert.Equal(t, map[string]string{"jupyterhub-user-{username}": "/home/jovyan/work"}, cfg.Volumes())

		attr, ok := cfg.Get("DockerSpawner.notebook_dir")
		require.True(t, ok)
		assert.Equal(t, config.SourceDefault, attr.Source)
		assert.Equal(t, EnvNotebookDir, attr.EnvKey)
	})

	t.Run("override", func(t *testing.T) {
		cfg, err := Assemble(VariantTraefik, env(EnvNotebookImage, "myimage:latest", EnvNotebookDir, "/custom/path"))
		require.NoError(t, err)
		assert.Equal(t, "/custom/path", cfg.DockerSpawner.NotebookDir)
		assert.Equal(t, map[string]string{"jupyterhub-user-{username}": "/custom/path"}, cfg.Volumes())

		attr, ok := cfg.Get("DockerSpawner.notebook_dir")
		require.True(t, ok)
		assert.Equal(t, config.SourceEnvironment, attr.Source)
	})
}

func TestAssemble_Admin(t *testing.T) {
	tests := []struct {
		name     string
		env      config.Env
		expected []string
	}{
		{"unset", env(EnvNotebookImage, "img"), nil},
		{"empty", env(EnvNotebookImage, "img", EnvAdmin, ""), nil},
		{"set", env(EnvNotebookImage, "img", EnvAdmin, "alice"), []string{"alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Assemble(VariantCompose, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Admins())
			assert.Equal(t, tt.expected != nil, cfg.IsSet("Authenticator.admin_users"))
		})
	}
}

func TestAssemble_EndToEnd(t *testing.T) {
	cfg, err := Assemble(VariantTraefik, env(EnvNotebookImage, "myimage:latest", EnvAdmin, "bob"))
	require.NoError(t, err)

	assert.Equal(t, "myimage:latest", cfg.DockerSpawner.Image)
	assert.Equal(t, "/home/jovyan/work", cfg.DockerSpawner.NotebookDir)
	assert.Equal(t, []string{"bob"}, cfg.Admins())

	assert.Equal(t, SpawnerClassDocker, cfg.JupyterHub.SpawnerClass)
	assert.Equal(t, ProxyClassTraefikFile, cfg.JupyterHub.ProxyClass)
	assert.Equal(t, AuthenticatorClassNative, cfg.JupyterHub.AuthenticatorClass)
	assert.Equal(t, "http://hub:8000", cfg.JupyterHub.HubBindURL)
	assert.Equal(t, "DEBUG", cfg.JupyterHub.LogLevel)
	assert.True(t, cfg.JupyterHub.CleanupProxy)
	assert.False(t, cfg.TraefikFileProviderProxy.ShouldStart)
	assert.Equal(t, "/var/run/traefik/jupyterhub.yaml", cfg.TraefikFileProviderProxy.DynamicConfigFile)
	assert.False(t, cfg.TraefikFileProviderProxy.TraefikAPIValidateCert)
	assert.Equal(t, "admin", cfg.TraefikFileProviderProxy.TraefikAPIUsername)
	assert.True(t, cfg.DockerSpawner.Remove)
	assert.Equal(t, "traefik_internal", cfg.DockerSpawner.NetworkName)
	assert.True(t, cfg.NativeAuthenticator.OpenSignup)
	assert.False(t, cfg.IsSet("TraefikFileProviderProxy.traefik_cert_resolver"))
	assert.Empty(t, cfg.TraefikFileProviderProxy.TraefikCertResolver)

	require.NoError(t, cfg.Validate())
}

func TestAssemble_Variants(t *testing.T) {
	base := env(EnvNotebookImage, "img")

	traefik, err := Assemble(VariantTraefik, base)
	require.NoError(t, err)
	compose, err := Assemble(VariantCompose, base)
	require.NoError(t, err)

	assert.Equal(t, "http://hub.localhost", traefik.JupyterHub.BindURL)
	assert.Equal(t, "https://hub.localhost", compose.JupyterHub.BindURL)
	assert.Equal(t, "hub.localhost", traefik.JupyterHub.HubRoutespec)
	assert.Equal(t, "hub.localhost/", compose.JupyterHub.HubRoutespec)
	assert.Equal(t, "http://hub.localhost", traefik.JupyterHub.SubdomainHost)
	assert.Equal(t, "https://hub.localhost", compose.JupyterHub.SubdomainHost)
	assert.Equal(t, "http://traefik:8080", traefik.TraefikFileProviderProxy.TraefikAPIURL)
	assert.Equal(t, "https://traefik", compose.TraefikFileProviderProxy.TraefikAPIURL)

	require.NotNil(t, traefik.JupyterHub.CleanupServers)
	assert.True(t, *traefik.JupyterHub.CleanupServers)
	assert.Nil(t, compose.JupyterHub.CleanupServers)

	assert.Equal(t, "web", traefik.TraefikFileProviderProxy.TraefikEntrypoint)
	assert.False(t, compose.IsSet("TraefikFileProviderProxy.traefik_entrypoint"))

	assert.False(t, traefik.IsSet("JupyterHub.ssl_cert"))
	assert.Equal(t, SSLCertExternallyManaged, compose.JupyterHub.SSLCert)

	assert.Equal(t, "/srv/jupyterhub/jupyterhub_cookie_secret", traefik.JupyterHub.CookieSecretFile)
	assert.Equal(t, "sqlite:////srv/jupyterhub/jupyterhub.sqlite", traefik.JupyterHub.DBURL)
	assert.False(t, compose.IsSet("JupyterHub.cookie_secret_file"))
	assert.False(t, compose.IsSet("JupyterHub.db_url"))

	assert.NoError(t, traefik.Validate())
	assert.NoError(t, compose.Validate())
}

func TestAssemble_InvalidUTF8(t *testing.T) {
	for _, key := range []string{EnvNotebookImage, EnvNotebookDir, EnvAdmin} {
		t.Run(key, func(t *testing.T) {
			values := map[string]string{EnvNotebookImage: "img", EnvAdmin: "bob"}
			values[key] = "bob\u2028x\xff"

			cfg, err := Assemble(VariantTraefik, config.MapEnv(values))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, config.ErrInvalidInput))
			assert.Contains(t, err.Error(), key)
		})
	}

	cfg, err := Assemble(VariantTraefik, env(EnvNotebookImage, "img", EnvAdmin, "bob\u2028é"))
	require.NoError(t, err)
	assert.Equal(t, []string{"bob\u2028é"}, cfg.Admins())
}

func TestConfig_JSONKeepsAuthenticator(t *testing.T) {
	cfg, err := Assemble(VariantCompose, env(EnvNotebookImage, "img"))
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Authenticator":{}`)
	assert.NotContains(t, string(data), "traefik_cert_resolver")
}

func TestAssemble_UnknownVariant(t *testing.T) {
	cfg, err := Assemble(Variant(7), env(EnvNotebookImage, "img"))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "Variant(7)")
}

func TestConfig_AttributesOrder(t *testing.T) {
	cfg, err := Assemble(VariantTraefik, env(EnvNotebookImage, "img", EnvAdmin, "alice"))
	require.NoError(t, err)

	attrs := cfg.Attributes()
	require.NotEmpty(t, attrs)
	assert.Equal(t, "JupyterHub.spawner_class", attrs[0].Name)
	assert.Equal(t, "DockerSpawner.image", attrs[1].Name)
	assert.Equal(t, config.SourceEnvironment, attrs[1].Source)
	assert.Equal(t, "Authenticator.admin_users", attrs[len(attrs)-1].Name)

	seen := map[string]bool{}
	for _, a := range attrs {
		assert.False(t, seen[a.Name], "duplicate attribute %s", a.Name)
		seen[a.Name] = true
		assert.NotEmpty(t, a.Section())
		assert.NotEmpty(t, a.Field())
		if a.Source == config.SourceLiteral {
			assert.Empty(t, a.EnvKey, a.Name)
		}
	}
}

func TestConfig_AccessorsReturnCopies(t *testing.T) {
	cfg, err := Assemble(VariantTraefik, env(EnvNotebookImage, "img", EnvAdmin, "alice"))
	require.NoError(t, err)

	admins := cfg.Admins()
	admins[0] = "mallory"
	assert.Equal(t, []string{"alice"}, cfg.Admins())

	volumes := cfg.Volumes()
	volumes["jupyterhub-user-{username}"] = "/tmp"
	assert.Equal(t, "/home/jovyan/work", cfg.Volumes()["jupyterhub-user-{username}"])

	attr, ok := cfg.Get("Authenticator.admin_users")
	require.True(t, ok)
	attr.Value.([]string)[0] = "eve"
	again, _ := cfg.Get("Authenticator.admin_users")
	assert.Equal(t, []string{"alice"}, again.Value)
}

func TestAttribute_Secret(t *testing.T) {
	assert.True(t, Attribute{Name: "TraefikFileProviderProxy.traefik_api_password"}.Secret())
	assert.False(t, Attribute{Name: "TraefikFileProviderProxy.traefik_api_username"}.Secret())
}

func TestVariantString(t *testing.T) {
	v, err := VariantString("compose")
	require.NoError(t, err)
	assert.Equal(t, VariantCompose, v)

	v, err = VariantString("TRAEFIK")
	require.NoError(t, err)
	assert.Equal(t, VariantTraefik, v)

	_, err = VariantString("kubernetes")
	assert.Error(t, err)

	assert.Equal(t, []string{"traefik", "compose"}, VariantStrings())
}
