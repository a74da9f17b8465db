package domain

import (
	"strconv"
	"strings"
)

// Instance is a federated server known to the bootstrap instance.
type Instance struct {
	ID       int
	Domain   string
	Software string
}

// ItemID implements Item.
func (i Instance) ItemID() string { return "instance:" + strconv.Itoa(i.ID) }

// URL returns the https base URL of the instance.
func (i Instance) URL() string {
	return NormalizeInstanceURL(i.Domain)
}

// NormalizeInstanceURL accepts a bare domain or URL and returns an https base URL without trailing slash.
func NormalizeInstanceURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	return strings.TrimRight(raw, "/")
}
