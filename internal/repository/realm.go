// Package repository maps domain entities onto the entity store's key scheme.
package repository

import (
	"context"
	"fmt"
	"strings"

	"helheim/internal/domain"
	"helheim/internal/store"
)

// Sort-key tags for the three realm-scoped entity kinds. The realm details
// row uses a fixed sort key; user and portal rows embed the identifying guid
// after the tag.
const (
	realmDetailsSortKey = "REALM#DETAILS"
	userSortKeyTag      = "USER"
	portalSortKeyTag    = "PORTAL"
)

// Meta-type discriminators stored on every row.
const (
	metaTypeRealm       = "REALM"
	metaTypeRealmUser   = "REALM_USER"
	metaTypeRealmPortal = "REALM_PORTAL"
)

// RealmRepo implements domain.RealmRepository on one entity-store table.
// All three entity kinds share the table: partition key is the realm guid,
// the sort key distinguishes the kind and embeds the entity's own guid.
type RealmRepo struct {
	store         store.EntityStore
	userGUIDIndex string
}

// NewRealmRepo creates a repository over the realms table. userGUIDIndex is
// the secondary index keyed by user_guid used for "all realms for this user".
func NewRealmRepo(entityStore store.EntityStore, userGUIDIndex string) *RealmRepo {
	return &RealmRepo{store: entityStore, userGUIDIndex: userGUIDIndex}
}

// GetRealm returns the realm details row.
func (r *RealmRepo) GetRealm(ctx context.Context, realmGUID string) (*domain.Realm, error) {
	rec, ok, err := r.store.Get(ctx, realmGUID, realmDetailsSortKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound("realm %s not found", realmGUID)
	}
	return decodeRealm(rec)
}

// ListRealmsForUser queries the user-guid secondary index. An empty result
// is not an error.
func (r *RealmRepo) ListRealmsForUser(ctx context.Context, userGUID string) ([]domain.RealmUser, error) {
	recs, err := r.store.QueryIndex(ctx, r.userGUIDIndex, "user_guid", userGUID)
	if err != nil {
		return nil, err
	}
	return decodeRealmUsers(recs)
}

// GetMembership returns the user's membership row in the realm.
func (r *RealmRepo) GetMembership(ctx context.Context, realmGUID, userGUID string) (*domain.RealmUser, error) {
	rec, ok, err := r.store.Get(ctx, realmGUID, userSortKeyTag+"#"+userGUID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound("user %s is not a member of realm %s", userGUID, realmGUID)
	}
	return decodeRealmUser(rec)
}

// ListMembers prefix-queries the realm partition for membership rows.
func (r *RealmRepo) ListMembers(ctx context.Context, realmGUID string) ([]domain.RealmUser, error) {
	recs, err := r.store.Query(ctx, realmGUID, userSortKeyTag+"#")
	if err != nil {
		return nil, err
	}
	return decodeRealmUsers(recs)
}

// ListPortals prefix-queries the realm partition for portal rows.
func (r *RealmRepo) ListPortals(ctx context.Context, realmGUID string) ([]domain.RealmPortal, error) {
	recs, err := r.store.Query(ctx, realmGUID, portalSortKeyTag+"#")
	if err != nil {
		return nil, err
	}
	portals := make([]domain.RealmPortal, 0, len(recs))
	for _, rec := range recs {
		portal, err := decodeRealmPortal(rec)
		if err != nil {
			return nil, err
		}
		portals = append(portals, *portal)
	}
	return portals, nil
}

// PutRealm upserts the realm details row.
func (r *RealmRepo) PutRealm(ctx context.Context, realm *domain.Realm) error {
	return r.store.Put(ctx, encodeRealm(realm))
}

// PutMembership upserts a membership row.
func (r *RealmRepo) PutMembership(ctx context.Context, user *domain.RealmUser) error {
	return r.store.Put(ctx, encodeRealmUser(user))
}

// PutPortal upserts a portal row.
func (r *RealmRepo) PutPortal(ctx context.Context, portal *domain.RealmPortal) error {
	return r.store.Put(ctx, encodeRealmPortal(portal))
}

// DeletePortal removes exactly the identified portal row. Deleting an absent
// row is a no-op so close-portal retries stay safe.
func (r *RealmRepo) DeletePortal(ctx context.Context, realmGUID, portalGUID string) error {
	return r.store.Delete(ctx, realmGUID, portalSortKeyTag+"#"+portalGUID)
}

// --- encoding ---

func encodeRealm(realm *domain.Realm) store.Record {
	return store.Record{
		"guid":        realm.GUID,
		"s_key":       realmDetailsSortKey,
		"name":        realm.Name,
		"description": realm.Description,
		"c_at":        domain.FormatTime(realm.CreatedAt),
		"meta_type":   metaTypeRealm,
	}
}

func encodeRealmUser(user *domain.RealmUser) store.Record {
	return store.Record{
		"guid":            user.RealmGUID,
		"s_key":           userSortKeyTag + "#" + user.UserGUID,
		"membership_guid": user.GUID,
		"user_guid":       user.UserGUID,
		"username":        user.Username,
		"role":            user.Role,
		"c_at":            domain.FormatTime(user.CreatedAt),
		"meta_type":       metaTypeRealmUser,
	}
}

func encodeRealmPortal(portal *domain.RealmPortal) store.Record {
	return store.Record{
		"guid":                portal.RealmGUID,
		"s_key":               portalSortKeyTag + "#" + portal.GUID,
		"opened_by_user_guid": portal.OpenedByUserGUID,
		"instance_id":         portal.InstanceID,
		"spot_request_id":     portal.SpotRequestID,
		"name":                portal.Name,
		"world_name":          portal.WorldName,
		"password":            portal.Password,
		"public_address":      portal.PublicAddress,
		"region":              portal.Region,
		"instance_type":       portal.InstanceType,
		"status":              portal.Status,
		"c_at":                domain.FormatTime(portal.CreatedAt),
		"meta_type":           metaTypeRealmPortal,
	}
}

// --- decoding ---

// splitSortKey splits "TAG#guid" and validates the tag. A mismatch means a
// writer put a record of the wrong kind where a query expected another; that
// is an internal consistency error and must fail loudly.
func splitSortKey(rec store.Record, wantTag string) (string, error) {
	sortKey := rec["s_key"]
	tag, guid, found := strings.Cut(sortKey, "#")
	if !found || tag != wantTag || guid == "" {
		return "", fmt.Errorf("corrupt record: sort key %q does not match expected tag %q", sortKey, wantTag)
	}
	return guid, nil
}

func requireMetaType(rec store.Record, want string) error {
	if got := rec["meta_type"]; got != want {
		return fmt.Errorf("corrupt record: meta type %q, expected %q", got, want)
	}
	return nil
}

func decodeRealm(rec store.Record) (*domain.Realm, error) {
	if err := requireMetaType(rec, metaTypeRealm); err != nil {
		return nil, err
	}
	createdAt, err := domain.ParseTime(rec["c_at"])
	if err != nil {
		return nil, fmt.Errorf("corrupt record: realm %s timestamp: %w", rec["guid"], err)
	}
	return &domain.Realm{
		GUID:        rec["guid"],
		Name:        rec["name"],
		Description: rec["description"],
		CreatedAt:   createdAt,
	}, nil
}

func decodeRealmUser(rec store.Record) (*domain.RealmUser, error) {
	if err := requireMetaType(rec, metaTypeRealmUser); err != nil {
		return nil, err
	}
	userGUID, err := splitSortKey(rec, userSortKeyTag)
	if err != nil {
		return nil, err
	}
	createdAt, err := domain.ParseTime(rec["c_at"])
	if err != nil {
		return nil, fmt.Errorf("corrupt record: membership %s timestamp: %w", rec["membership_guid"], err)
	}
	return &domain.RealmUser{
		GUID:      rec["membership_guid"],
		RealmGUID: rec["guid"],
		UserGUID:  userGUID,
		Username:  rec["username"],
		Role:      rec["role"],
		CreatedAt: createdAt,
	}, nil
}

func decodeRealmUsers(recs []store.Record) ([]domain.RealmUser, error) {
	users := make([]domain.RealmUser, 0, len(recs))
	for _, rec := range recs {
		user, err := decodeRealmUser(rec)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func decodeRealmPortal(rec store.Record) (*domain.RealmPortal, error) {
	if err := requireMetaType(rec, metaTypeRealmPortal); err != nil {
		return nil, err
	}
	portalGUID, err := splitSortKey(rec, portalSortKeyTag)
	if err != nil {
		return nil, err
	}
	createdAt, err := domain.ParseTime(rec["c_at"])
	if err != nil {
		return nil, fmt.Errorf("corrupt record: portal %s timestamp: %w", portalGUID, err)
	}
	return &domain.RealmPortal{
		GUID:             portalGUID,
		RealmGUID:        rec["guid"],
		OpenedByUserGUID: rec["opened_by_user_guid"],
		InstanceID:       rec["instance_id"],
		SpotRequestID:    rec["spot_request_id"],
		Name:             rec["name"],
		WorldName:        rec["world_name"],
		Password:         rec["password"],
		PublicAddress:    rec["public_address"],
		Region:           rec["region"],
		InstanceType:     rec["instance_type"],
		Status:           rec["status"],
		CreatedAt:        createdAt,
	}, nil
}
