package registry

import "errors"

// Tenant represents one registered notification target, keyed by the
// subdomain it reports from. Each write replaces the full record.
type Tenant struct {
	Subdomain   string `json:"subdomain"`
	PhoneNumber string `json:"phoneNumber"`
	IsActive    bool   `json:"isActive"`
}

var (
	ErrSubdomainRequired = errors.New("subdomain is required")
	ErrPhoneRequired     = errors.New("phone number is required")
)

// State keys. The index lists every known subdomain so tenants can be
// enumerated without a store-wide scan.
const indexKey = "user_index"

func recordKey(subdomain string) string {
	return "user:" + subdomain
}
