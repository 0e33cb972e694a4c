// Package hub assembles the configuration of a notebook hub deployment.
//
// The hub runs behind a Traefik reverse proxy, spawns one Docker container
// per user, and signs users up with NativeAuthenticator. None of those
// collaborators are implemented here; this package only produces the values
// they read at startup.
//
// # Assembly
//
// Assemble runs one linear pass over the settings of a deployment Variant.
// Each setting is either a literal or a single environment lookup with an
// optional default. The only branch assigns Authenticator.admin_users when
// JUPYTERHUB_ADMIN is set.
//
// A missing DOCKER_NOTEBOOK_IMAGE aborts assembly with
// config.ErrMissingRequiredInput; no partial Config is ever returned.
//
// # Variants
//
//   - traefik: plain HTTP through the "web" entrypoint, hub state persisted
//     under /srv/jupyterhub
//   - compose: HTTPS with certificates managed by Traefik
package hub
