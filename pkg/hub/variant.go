package hub

//go:generate go run github.com/dmarkham/enumer -type Variant -trimprefix Variant -transform lower -yaml -json -output variant.gen.go

// Variant selects one of the shipped deployment layouts
type Variant int

const (
	VariantTraefik Variant = iota
	VariantCompose
)

// profile holds the settings that differ between variants. Empty strings
// and nil pointers are left unset by the assembler.
type profile struct {
	bindURL           string
	hubRoutespec      string
	subdomainHost     string
	cleanupServers    *bool
	traefikAPIURL     string
	traefikEntrypoint string
	sslCert           string
	cookieSecretFile  string
	dbURL             string
}

func boolPtr(b bool) *bool { return &b }

func (v Variant) profile() profile {
	switch v {
	case VariantCompose:
		return profile{
			bindURL:       "https://hub.localhost",
			hubRoutespec:  "hub.localhost/",
			subdomainHost: "https://hub.localhost",
			traefikAPIURL: "https://traefik",
			sslCert:       SSLCertExternallyManaged,
		}
	default:
		return profile{
			bindURL:           "http://hub.localhost",
			hubRoutespec:      "hub.localhost",
			subdomainHost:     "http://hub.localhost",
			cleanupServers:    boolPtr(true),
			traefikAPIURL:     "http://traefik:8080",
			traefikEntrypoint: "web",
			cookieSecretFile:  "/srv/jupyterhub/jupyterhub_cookie_secret",
			dbURL:             "sqlite:////srv/jupyterhub/jupyterhub.sqlite",
		}
	}
}
