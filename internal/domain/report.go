package domain

import "time"

// Report is a generated markdown news report.
type Report struct {
	Name       string
	Content    string
	ProducedAt time.Time
}

// ReportEntry describes a report file without its content.
type ReportEntry struct {
	Name       string
	ModifiedAt time.Time
}
