package lanegrid

import "golang.org/x/exp/constraints"

// ReferenceSegmentedScan is the sequential oracle for the device scan
// paths: a single-threaded periodic scan whose running total resets to the
// identity at every period boundary, matching the segmented semantics of
// the grid driver exactly. It carries no state between calls or periods.
//
// The type parameter ranges over the fixed-width integer types; addition is
// the scan operator and zero the identity, as in the kernels. period must
// be positive.
func ReferenceSegmentedScan[T constraints.Integer](in []T, period int, kind ScanKind) []T {
	if period <= 0 {
		panic("lanegrid: reference scan period must be positive")
	}

	out := make([]T, len(in))
	var run T
	for i, v := range in {
		if i%period == 0 {
			run = 0
		}
		if kind == ScanExclusive {
			out[i] = run
			run += v
		} else {
			run += v
			out[i] = run
		}
	}
	return out
}
