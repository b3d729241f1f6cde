// Package metrics keeps in-memory statistics about processed uploads. Records
// carry counts and timings only, never document text.
package metrics

import "time"

// UploadRecord describes one upload handled by the web server.
type UploadRecord struct {
	// ID is the unique identifier for this record
	ID string `json:"id"`

	// Route is the endpoint that received the upload ("resumir" or "api")
	Route string `json:"route"`

	// Status is "success", "rejected" (client error) or "error"
	Status string `json:"status"`

	// HTTPStatus is the response status code
	HTTPStatus int `json:"http_status"`

	// Reason is the message returned to the client for failed uploads
	Reason string `json:"reason,omitempty"`

	Pages     int    `json:"pages"`
	Words     int    `json:"words"`
	Sentences int    `json:"sentences"`
	Fallback  string `json:"fallback,omitempty"`

	Time     time.Time     `json:"time"`
	Duration time.Duration `json:"duration"`
}

// UploadStats aggregates every record since start.
type UploadStats struct {
	TotalUploads int64 `json:"total_uploads"`
	Succeeded    int64 `json:"succeeded"`
	Rejected     int64 `json:"rejected"`
	Failed       int64 `json:"failed"`

	// ByFallback counts successful summaries per fallback ("none", "lead", "truncated")
	ByFallback map[string]int64 `json:"by_fallback"`

	// AvgDuration and AvgPages cover successful uploads
	AvgDuration time.Duration `json:"avg_duration"`
	AvgPages    float64       `json:"avg_pages"`
}

// SystemStatus is the server state reported next to the statistics.
type SystemStatus struct {
	// Health is "running" or "stopping"
	Health string `json:"health"`

	Version   string        `json:"version"`
	Uptime    time.Duration `json:"uptime"`
	LastCheck time.Time     `json:"last_check"`
}

// Record status values
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusError    = "error"
)

// Health values
const (
	HealthRunning  = "running"
	HealthStopping = "stopping"
)

// FallbackNone labels summaries built from ranked sentences.
const FallbackNone = "none"
