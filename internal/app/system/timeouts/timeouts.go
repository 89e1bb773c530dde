// Package timeouts centralizes the context deadlines used by HTTP
// handlers for store operations. Every coordinator call is a single
// bounded request/response, so a handful of tiers is enough.
package timeouts

import "time"

const (
	// Ping bounds health-check connectivity probes.
	Ping = 2 * time.Second
	// Short bounds single-document reads and writes.
	Short = 5 * time.Second
	// Medium bounds list queries and multi-step operations such as the
	// visible-issue fan-out and leaderboard scans.
	Medium = 10 * time.Second
)
