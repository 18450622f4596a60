// Package store provides the keyed entity store and blob store backends.
//
// The entity store addresses rows by (partition, sort) and supports prefix
// queries within a partition plus secondary-index lookups. Records are flat
// string-keyed maps; the repositories own all encoding and decoding.
package store

import "context"

// Record is one stored row. All attribute values are strings; timestamps are
// serialized as ISO-8601 UTC with a Z suffix before they reach the store.
type Record map[string]string

// TableSpec names a table and its key attributes. SortKey is empty for
// tables addressed by partition key alone.
type TableSpec struct {
	Name         string
	PartitionKey string
	SortKey      string
}

// EntityStore is the generic keyed store the repositories write through.
// Implementations must treat single-row puts as atomic; no cross-row
// transaction is offered or assumed.
type EntityStore interface {
	// Put upserts a record. The record must carry the key attributes.
	Put(ctx context.Context, rec Record) error
	// Get returns the record at (partition, sort). Absence is reported via
	// the second return value, not an error.
	Get(ctx context.Context, partition, sort string) (Record, bool, error)
	// Query returns the records in the partition whose sort key starts with
	// sortPrefix, in sort-key order.
	Query(ctx context.Context, partition, sortPrefix string) ([]Record, error)
	// QueryIndex returns the records whose index key equals value.
	QueryIndex(ctx context.Context, indexName, key, value string) ([]Record, error)
	// Delete removes the record at (partition, sort). Deleting an absent
	// record is a no-op.
	Delete(ctx context.Context, partition, sort string) error
}
