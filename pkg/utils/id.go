package utils

import "github.com/google/uuid"

// Identifier prefixes, one per entity kind.
const (
	PrefixUser         = "usr"
	PrefixSubscription = "sub"
	PrefixSession      = "sess"
	PrefixReset        = "reset"
	PrefixTask         = "task"
	PrefixProduct      = "prd"
	PrefixVariant      = "var"
	PrefixExport       = "exp"
	PrefixAnnouncement = "ann"
	PrefixChangelog    = "log"
)

// NewID returns an opaque identifier of the form <prefix>_<uuid>.
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
