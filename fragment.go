package quadsplit

// Fragment is a region currently materialized as a leaf of the
// decomposition, carrying its cached statistics and scheduling priority.
//
// ID is a per-engine sequence number assigned at creation: strictly
// increasing, starting at 1 after each Reset. It gives render-side
// collaborators a stable key for removing a fragment's visual by lookup,
// and it is the deterministic tie-break when weighted scores are equal.
type Fragment struct {
	ID     uint64
	Region Region
	Stats  Stats

	// Weighted is Stats.Score scaled by sqrt(region area / image area).
	// Scaling by area fraction keeps small high-contrast regions from being
	// perpetually preferred over large ones.
	Weighted float64
}
