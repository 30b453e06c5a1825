package domain

// severityBucket maps counts below max (exclusive) to a display color.
// The table is evaluated in order, so buckets must be sorted ascending;
// adding a bucket or moving a cutoff is a one-line change here.
type severityBucket struct {
	max   int
	color string
}

var severityBuckets = []severityBucket{
	{1, "#AAAAAA"},     // zero (or negative, for inconsistent actives)
	{100, "#01E35E"},   // green
	{1000, "#FED023"},  // yellow
	{10000, "#F55E12"}, // orange
}

// severityMaxColor is the catch-all for counts past the last bucket.
const severityMaxColor = "#FE205D"

// SeverityColor buckets a count into its display color. It is a pure
// function and monotonic in severity: larger counts never map to a less
// severe color.
func SeverityColor(n int) string {
	for _, b := range severityBuckets {
		if n < b.max {
			return b.color
		}
	}
	return severityMaxColor
}
