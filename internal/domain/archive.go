package domain

import "time"

// Archive identifies one immutable snapshot under archives/.
type Archive struct {
	// ID is the directory name, derived from the creation time.
	ID string
	// Dir is the absolute archive directory.
	Dir string
	// RawPath is the verbatim copy of the source log.
	RawPath string
	// ListPath is the ranked, silence-filtered top list.
	ListPath string
	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time
	// Commands is the list written to ListPath.
	Commands RankedList
	// Silenced counts commands the exclusion set removed from the list.
	Silenced int
}
