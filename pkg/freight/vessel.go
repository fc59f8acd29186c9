package freight

import "time"

// VesselRecord is a vessel directory entry keyed by IMO number. Records
// reach the directory on two paths: the on-demand enrichment lookup
// (IMO, MMSI, Name only) and the bulk registry census (all identity
// fields plus the registry ShipID).
type VesselRecord struct {
	IMO      string
	MMSI     string `bson:",omitempty"`
	Name     string
	Type     string `bson:",omitempty"`
	Flag     string `bson:",omitempty"`
	CallSign string `bson:",omitempty"`
	ShipID   int    `bson:",omitempty"`

	LastUpdate time.Time
}
