package types

import "time"

// TimeLayout is the ledger timestamp format, in local time.
const TimeLayout = "2006-01-02 15:04:05"

// Entry is one ledger row.
type Entry struct {
	Time     time.Time `json:"time"`
	Stock    string    `json:"stock"`
	Price    Number    `json:"price"`
	Decision string    `json:"decision"`
}

// Equal compares entries at ledger precision (whole seconds).
func (e Entry) Equal(o Entry) bool {
	return e.Time.Truncate(time.Second).Equal(o.Time.Truncate(time.Second)) &&
		e.Stock == o.Stock &&
		e.Price.String() == o.Price.String() &&
		e.Decision == o.Decision
}
