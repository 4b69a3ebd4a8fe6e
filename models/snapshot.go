package models

// Snapshot is a document dump of the whole store: three named collections,
// each mapping an internal identifier to a flat record.
type Snapshot struct {
	Users        map[string]User        `json:"users" yaml:"users"`
	Devices      map[string]Device      `json:"devices" yaml:"devices"`
	Reservations map[string]Reservation `json:"reservations" yaml:"reservations"`
}

// SnapshotFormat selects the encoding of an exported [Snapshot].
type SnapshotFormat string

const (
	SnapshotJSON SnapshotFormat = "json"
	SnapshotYAML SnapshotFormat = "yaml"
)
