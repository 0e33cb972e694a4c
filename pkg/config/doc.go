// Package config resolves deployment settings from environment variables.
//
// Every value handed to the notebook hub's collaborators is either a literal
// or the result of exactly one environment lookup with at most one default.
// This package provides that lookup and names the source of each value.
//
// # Sources
//
//   - literal: the value is fixed by the deployment variant
//   - environment: the value was read from a set, non-empty variable
//   - default: the variable was unset or empty and the default was used
//
// # Environment Variables
//
//   - DOCKER_NOTEBOOK_IMAGE: image for per-user containers (required)
//   - DOCKER_NOTEBOOK_DIR: working directory inside containers
//   - JUPYTERHUB_ADMIN: optional single administrator
package config
