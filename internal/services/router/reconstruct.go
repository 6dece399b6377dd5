package router

// Reconstruct walks the parent table from (lastVenue, steps) back to the
// first venue and returns the venue-indexed quanta allocation. The output is
// zero-initialized up front, so venues the walk never credits (the remaining
// budget hit zero early) correctly receive nothing, and the result needs no
// re-sorting: index i is venue i.
//
// The sum of reconstructed quanta must equal steps exactly. A mismatch means
// the table indexing drifted somewhere upstream and is reported as
// ErrAllocationMismatch rather than handing the caller a silently truncated
// split.
func (d *Distribution) Reconstruct() ([]uint8, error) {
	venues := len(d.parents)
	quanta := make([]uint8, venues)

	j := d.steps
	total := 0
	for v := venues - 1; v >= 0; v-- {
		given := j - d.parents[v][j]
		quanta[v] = uint8(given)
		total += given
		j = d.parents[v][j]
	}

	if total != d.steps || j != 0 {
		return nil, ErrAllocationMismatch
	}
	return quanta, nil
}
