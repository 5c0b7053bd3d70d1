package dispatch

import (
	"regexp"

	"github.com/mobilebiz/gps-message/internal/geo"
)

// LocationEvent is one validated location update. It is ephemeral, never
// persisted; the transport layer builds it from the raw webhook payload.
type LocationEvent struct {
	SourceURL  string
	Coordinate geo.Point
}

// Webhook sources report from per-tenant hostnames of the form
// https://<subdomain>.cybozu.com/...
var subdomainPattern = regexp.MustCompile(`https://([^.]+)\.cybozu\.com`)

// subdomainFromURL extracts the tenant identifier from an event source URL.
func subdomainFromURL(rawURL string) (string, bool) {
	match := subdomainPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", false
	}
	return match[1], true
}
