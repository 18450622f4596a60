package domain

import (
	"slices"
	"time"
)

// Timestamps are stored as ISO-8601 UTC with a Z suffix. The exact format is
// load-bearing: stored values are compared lexicographically by the store.
const TimeFormat = "2006-01-02T15:04:05Z"

// FormatTime renders a timestamp in the stored wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ParseTime parses a timestamp in the stored wire format.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeFormat, s)
}

// Realm is a tenant grouping of members and at most one active portal.
type Realm struct {
	GUID        string
	Name        string
	Description string
	CreatedAt   time.Time
}

// RealmUser is a principal's role-bearing membership in one realm.
// Unique per (RealmGUID, UserGUID).
type RealmUser struct {
	GUID      string // membership guid
	RealmGUID string
	UserGUID  string
	Username  string
	Role      string
	CreatedAt time.Time
}

// RealmPortal is a provisioned, running game-server instance attached to a
// realm. At most one portal row exists per realm at any time.
type RealmPortal struct {
	GUID             string // portal guid
	RealmGUID        string
	OpenedByUserGUID string
	InstanceID       string
	SpotRequestID    string
	Name             string
	WorldName        string
	Password         string
	PublicAddress    string
	Region           string
	InstanceType     string
	Status           string
	CreatedAt        time.Time
}

// RoleAdmin is the role required for mutating realm operations.
const RoleAdmin = "admin"

// WorldModifier tunes one aspect of a world's difficulty.
type WorldModifier struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

var worldModifierValues = map[string][]string{
	"combat":       {"normal", "veryeasy", "easy", "hard", "veryhard"},
	"deathpenalty": {"normal", "casual", "veryeasy", "easy", "hard", "hardcore"},
	"resources":    {"normal", "muchless", "less", "more", "muchmore", "most"},
	"raids":        {"normal", "none", "muchless", "less", "more", "muchmore"},
	"portals":      {"normal", "casual", "hard", "veryhard"},
}

var worldPresets = []string{"normal", "casual", "easy", "hard", "hardcore", "immersive", "hammer"}

var worldKeys = []string{"nobuildcost", "playerevents", "passivemobs", "nomap"}

// MinPortalPasswordLength is the shortest password the game server accepts.
const MinPortalPasswordLength = 6

// CreateRealmPortal holds parameters for opening a portal.
type CreateRealmPortal struct {
	Name      string          `json:"name"`
	WorldName string          `json:"world_name"`
	Password  string          `json:"password"`
	Preset    string          `json:"preset,omitempty"`
	Modifiers []WorldModifier `json:"modifiers,omitempty"`
	Keys      []string        `json:"keys,omitempty"`
}

// Validate checks that the request is well-formed. The password length check
// is deliberately not here: the portal lifecycle applies it after the realm
// and open-portal preconditions, preserving the precondition order.
func (r *CreateRealmPortal) Validate() error {
	if r.Name == "" {
		return ErrValidation("server name is required")
	}
	if r.WorldName == "" {
		return ErrValidation("world name is required")
	}
	if r.Preset != "" && !slices.Contains(worldPresets, r.Preset) {
		return ErrValidation("unknown world preset %q", r.Preset)
	}
	for _, m := range r.Modifiers {
		values, ok := worldModifierValues[m.Key]
		if !ok {
			return ErrValidation("unknown world modifier %q", m.Key)
		}
		if !slices.Contains(values, m.Value) {
			return ErrValidation("invalid value %q for world modifier %q", m.Value, m.Key)
		}
	}
	for _, k := range r.Keys {
		if !slices.Contains(worldKeys, k) {
			return ErrValidation("unknown world key %q", k)
		}
	}
	return nil
}

// CloseRealmPortal identifies the portal to tear down. The instance and spot
// request identifiers are the values returned by the open operation; they are
// trusted as supplied.
type CloseRealmPortal struct {
	PortalGUID    string `json:"portal_guid"`
	InstanceID    string `json:"instance_id"`
	SpotRequestID string `json:"spot_request_id"`
}

// Validate checks that the request is well-formed.
func (r *CloseRealmPortal) Validate() error {
	if r.PortalGUID == "" {
		return ErrValidation("portal_guid is required")
	}
	if r.InstanceID == "" {
		return ErrValidation("instance_id is required")
	}
	if r.SpotRequestID == "" {
		return ErrValidation("spot_request_id is required")
	}
	return nil
}
