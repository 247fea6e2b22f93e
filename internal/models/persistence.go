package models

// SnapshotVersion is the current on-disk snapshot format.
const SnapshotVersion = 1

// Snapshot is the persistence envelope of a dataset with an explicit version field.
type Snapshot struct {
	Version int      `json:"version"`
	Dataset *Dataset `json:"dataset"`
}
