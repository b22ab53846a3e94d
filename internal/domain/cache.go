package domain

import "time"

// CachedResponse keeps the service's text blob for a given file checksum so a
// result can be shown again without re-uploading.
type CachedResponse struct {
	Checksum  string    `json:"checksum"`
	FileName  string    `json:"file_name"`
	Text      string    `json:"text"`
	FetchedAt time.Time `json:"fetched_at"`
}

// IsStale reports whether the entry is older than maxAge. A zero maxAge never expires.
func (c *CachedResponse) IsStale(now time.Time, maxAge time.Duration) bool {
	return maxAge > 0 && now.Sub(c.FetchedAt) > maxAge
}
