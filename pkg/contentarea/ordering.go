package contentarea

// Ordering selects which of the four ContentArea iteration-order flavors
// New constructs (spec §4.3).
type Ordering int

const (
	// Unordered iterates in unspecified (hash map) order.
	Unordered Ordering = iota
	// Insertion iterates in the order entries were first put.
	Insertion
	// Sorted iterates in ascending path-string order.
	Sorted
	// Single holds exactly one (path, content) pair or none; put replaces
	// both the path and the content.
	Single
)

// String names o, for diagnostics.
func (o Ordering) String() string {
	switch o {
	case Unordered:
		return "Unordered"
	case Insertion:
		return "Insertion"
	case Sorted:
		return "Sorted"
	case Single:
		return "Single"
	default:
		return "Unknown"
	}
}
