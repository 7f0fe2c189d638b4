// internal/model/sweep.go
package model

// SweepReport summarizes one maintenance cycle.
type SweepReport struct {
	Released    int `json:"released"`    // expired leases returned to the pool
	Deleted     int `json:"deleted"`     // accounts hard-deleted past data TTL
	Replenished int `json:"replenished"` // instances created synchronously
	Enqueued    int `json:"enqueued"`    // instances handed to the queue worker
}
