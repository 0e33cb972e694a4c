// Command hubconf assembles the configuration of a notebook hub deployment
// and hands it to the hub, its proxy and its spawner.
//
// The hub, Traefik and the per-user containers are started by docker compose;
// hubconf only produces the settings they read. Settings that change between
// deployments come from the environment so the hub image does not have to be
// rebuilt.
//
// # Quick Start
//
//	export DOCKER_NOTEBOOK_IMAGE=quay.io/jupyter/base-notebook:latest
//	export JUPYTERHUB_ADMIN=alice
//
//	# Inspect the resolved settings and where each came from
//	hubconf configuration show
//
//	# Write the file the hub loads at startup
//	hubconf configuration render --out /srv/jupyterhub/jupyterhub_config.py
//
//	# Block until the hub answers
//	hubconf wait --url http://hub:8000/hub/health
//
// # Environment Variables
//
//   - DOCKER_NOTEBOOK_IMAGE: image for per-user containers (required)
//   - DOCKER_NOTEBOOK_DIR: working directory in containers (default: /home/jovyan/work)
//   - JUPYTERHUB_ADMIN: single administrator, optional
//   - HUBCONF_VARIANT: deployment variant, traefik or compose (default: traefik)
//   - HUBCONF_LOG_LEVEL: log level for hubconf itself (default: info)
package main
