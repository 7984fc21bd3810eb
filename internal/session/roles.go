package session

import (
	"strings"

	"github.com/grooming-is/schedule-web/internal/groomapi"
)

// Roles as the backend issues them.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMaster  = "master"
)

// Capabilities is the per-role UI capability matrix.
type Capabilities struct {
	// CanCreateOrders shows the create-booking control and accepts order
	// submissions.
	CanCreateOrders bool
	// CanFilterMasters shows the free-choice master filter.
	CanFilterMasters bool
	// LockedToSelf pins the schedule to the signed-in master's own column.
	LockedToSelf bool
}

// CapabilitiesFor maps a role onto its capabilities. Unknown roles get the
// most restricted set.
func CapabilitiesFor(role string) Capabilities {
	switch role {
	case RoleAdmin, RoleManager:
		return Capabilities{CanCreateOrders: true, CanFilterMasters: true}
	case RoleMaster:
		return Capabilities{LockedToSelf: true}
	default:
		return Capabilities{LockedToSelf: true}
	}
}

// ResolveSelfMaster links a master-role login to a master record by
// case-insensitive substring containment of the login in the master's
// name, first match wins. The linkage has no foreign key to rely on;
// ambiguous logins resolve to whichever master the backend listed first.
func ResolveSelfMaster(login string, masters []groomapi.Master) (groomapi.ID, bool) {
	needle := strings.ToLower(strings.TrimSpace(login))
	if needle == "" {
		return "", false
	}
	for _, m := range masters {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			return m.ID, true
		}
	}
	return "", false
}
