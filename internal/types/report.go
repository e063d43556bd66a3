package types

// Report is everything a single analysis run produced.
type Report struct {
	RunID      string     `json:"run_id"`
	Resolution Resolution `json:"resolution"`
	Snapshot   Snapshot   `json:"snapshot"`
	Articles   []Article  `json:"articles"`
	Analysis   Analysis   `json:"analysis"`
	Decision   string     `json:"decision"`
	Label      Label      `json:"label"`
	Entry      Entry      `json:"entry"`
	Logged     bool       `json:"logged"`
	Warnings   []string   `json:"warnings,omitempty"`
}

func (r *Report) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
