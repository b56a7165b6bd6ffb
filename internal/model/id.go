package model

import "github.com/oklog/ulid/v2"

// NewRecordID returns a ULID string. ULIDs sort by creation time, which keeps
// record listings in insertion order.
func NewRecordID() string {
	return ulid.Make().String()
}
