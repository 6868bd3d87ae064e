package domain

// SortDirection is the order applied by a comparator
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Flip returns the opposite direction
func (d SortDirection) Flip() SortDirection {
	if d == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// RecommendationSortKey selects the comparator for recommendation sorting.
// Keys form a closed set so the query engine can dispatch exhaustively
// instead of doing string-keyed field lookups.
type RecommendationSortKey int

const (
	// RecommendationSortPriority orders by priority, highest first (default)
	RecommendationSortPriority RecommendationSortKey = iota

	// RecommendationSortEffort orders by effort ordinal, Small first
	RecommendationSortEffort

	// RecommendationSortImpact orders by impact ordinal, High first
	RecommendationSortImpact

	// RecommendationSortTime orders by estimated time, shortest first
	RecommendationSortTime
)

// String returns the key name used on CLI flags and config files
func (k RecommendationSortKey) String() string {
	switch k {
	case RecommendationSortEffort:
		return "effort"
	case RecommendationSortImpact:
		return "impact"
	case RecommendationSortTime:
		return "time"
	default:
		return "priority"
	}
}

// ParseRecommendationSortKey maps a key name to its sort key.
// Unrecognized names fall back to the priority default.
func ParseRecommendationSortKey(name string) RecommendationSortKey {
	switch name {
	case "effort":
		return RecommendationSortEffort
	case "impact":
		return RecommendationSortImpact
	case "time":
		return RecommendationSortTime
	default:
		return RecommendationSortPriority
	}
}

// RecommendationFilter holds the optional, AND-combined predicates for
// recommendation queries. Zero-value fields are inactive.
type RecommendationFilter struct {
	// Search is a case-insensitive substring matched against title,
	// description and file path
	Search string

	// Status matches recommendations with exactly this workflow status
	Status RecommendationStatus

	// Effort matches recommendations with exactly this effort
	Effort Effort

	// Impact matches recommendations with exactly this impact
	Impact Impact
}

// IsZero reports whether no predicate is active
func (f RecommendationFilter) IsZero() bool {
	return f.Search == "" && f.Status == "" && f.Effort == "" && f.Impact == ""
}

// ViolationSortKey selects the comparator for violation sorting
type ViolationSortKey int

const (
	// ViolationSortSeverity orders by severity ordinal (default)
	ViolationSortSeverity ViolationSortKey = iota

	// ViolationSortPrinciple orders by principle name lexicographically
	ViolationSortPrinciple

	// ViolationSortFile orders by file path lexicographically
	ViolationSortFile

	// ViolationSortLine orders by line number
	ViolationSortLine
)

// String returns the key name used on CLI flags and config files
func (k ViolationSortKey) String() string {
	switch k {
	case ViolationSortPrinciple:
		return "principle"
	case ViolationSortFile:
		return "file"
	case ViolationSortLine:
		return "line"
	default:
		return "severity"
	}
}

// ParseViolationSortKey maps a key name to its sort key.
// Unrecognized names fall back to the severity default.
func ParseViolationSortKey(name string) ViolationSortKey {
	switch name {
	case "principle":
		return ViolationSortPrinciple
	case "file":
		return ViolationSortFile
	case "line":
		return ViolationSortLine
	default:
		return ViolationSortSeverity
	}
}

// ViolationFilter holds the optional, AND-combined predicates for
// violation queries. Zero-value fields are inactive.
type ViolationFilter struct {
	// Search is a case-insensitive substring matched against description,
	// suggestion, file path and principle name
	Search string

	// Severity matches violations with exactly this severity
	Severity Severity

	// Principle matches violations whose principle name equals this value
	Principle string
}

// IsZero reports whether no predicate is active
func (f ViolationFilter) IsZero() bool {
	return f.Search == "" && f.Severity == "" && f.Principle == ""
}

// ViolationSortState tracks the active violation sort key and direction.
// Selecting a new key resets the direction to descending; re-selecting the
// active key flips the direction.
type ViolationSortState struct {
	Key       ViolationSortKey
	Direction SortDirection
}

// NewViolationSortState returns the default sort state: severity descending
func NewViolationSortState() ViolationSortState {
	return ViolationSortState{Key: ViolationSortSeverity, Direction: SortDescending}
}

// Select applies a key selection and returns the updated state
func (s ViolationSortState) Select(key ViolationSortKey) ViolationSortState {
	if key == s.Key {
		s.Direction = s.Direction.Flip()
		return s
	}
	s.Key = key
	s.Direction = SortDescending
	return s
}
