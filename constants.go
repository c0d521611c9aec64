package phiwave

// Worker constants
const (
	maxWorkers = 256 // Maximum goroutines for column processing
)

// Shape constants
const (
	// rowVectorRows marks a matrix whose single row is the transform axis.
	rowVectorRows = 1

	// Odd axes are padded by this many zero samples before analysis.
	oddAxisPadding = 1
)
