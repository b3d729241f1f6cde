package metrics

// Collector receives upload records and answers statistics queries.
// Implementations must be safe for concurrent use.
type Collector interface {
	// Record adds a finished upload.
	Record(rec UploadRecord)

	// Stats returns the aggregate over all recorded uploads.
	Stats() UploadStats

	// Recent returns up to limit records, oldest first.
	Recent(limit int) []UploadRecord

	// Status reports uptime and health; stopping is true during shutdown.
	Status(stopping bool) SystemStatus
}
