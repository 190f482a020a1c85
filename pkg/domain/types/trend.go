package types

// Trend describes the direction of a series between its last two weeks
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
	// TrendUnknown is used when fewer than two weeks are available
	TrendUnknown Trend = "unknown"
)

// String returns the string representation of the trend
func (t Trend) String() string {
	return string(t)
}

// Label returns the arrow label shown next to a metric
func (t Trend) Label() string {
	switch t {
	case TrendIncreasing:
		return "↑ Increasing"
	case TrendDecreasing:
		return "↓ Decreasing"
	case TrendStable:
		return "→ Stable"
	default:
		return ""
	}
}
