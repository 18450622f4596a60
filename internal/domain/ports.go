package domain

import (
	"context"
	"time"
)

// ProvisionRequest is the launch request sent to the provisioning backend.
type ProvisionRequest struct {
	RealmGUID  string          `json:"realmGuid"`
	ServerName string          `json:"serverName"`
	WorldName  string          `json:"worldName"`
	Password   string          `json:"password"`
	Preset     string          `json:"preset,omitempty"`
	Modifiers  []WorldModifier `json:"modifiers,omitempty"`
	Keys       []string        `json:"keys,omitempty"`
}

// ProvisionConfig echoes the launch configuration back from the backend.
type ProvisionConfig struct {
	ServerName string `json:"serverName"`
	WorldName  string `json:"worldName"`
}

// ProvisionResult is the provisioning backend's response for a running
// instance.
type ProvisionResult struct {
	InstanceID      string          `json:"instanceId"`
	SpotRequestID   string          `json:"spotRequestId"`
	Config          ProvisionConfig `json:"config"`
	PublicIPAddress string          `json:"publicIpAddress"`
	Region          string          `json:"region"`
	InstanceType    string          `json:"instanceType"`
	Status          string          `json:"status"`
}

// Provisioner turns a launch request into a running instance. The call is
// synchronous request/response; it is not retried here and callers impose
// timeouts through ctx.
type Provisioner interface {
	Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error)
}

// ComputeController tears down provisioned compute. Both operations are
// idempotent on an already-terminated or already-cancelled target.
type ComputeController interface {
	// TerminateInstance requests graceful termination of the instance.
	TerminateInstance(ctx context.Context, instanceID string) error
	// CancelSpotRequest cancels the open provisioning request.
	CancelSpotRequest(ctx context.Context, spotRequestID string) error
}

// TokenCodec encodes a claims mapping plus an expiry into an opaque signed
// string, and verifies/decodes such strings.
type TokenCodec interface {
	Encode(claims map[string]string, ttl time.Duration) (string, error)
	// Decode returns the claims, or CredentialsError when the signature or
	// expiry check fails.
	Decode(token string) (map[string]string, error)
}

// PasswordHasher hashes plaintext secrets and verifies them against stored
// hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key        string
	ModifiedAt time.Time
}

// ObjectStore is a generic blob store keyed by string paths. Backed by S3 in
// production and an in-memory map in tests.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, content []byte) error
	Copy(ctx context.Context, srcKey, dstKey string) error
	Delete(ctx context.Context, key string) error
}
