package crawl

import "github.com/apimap/apimap"

// Dedupe collapses repeated (method, path) detections across pages into
// one canonical record per key, preserving first-seen order. The earliest
// detection in crawl order wins, provenance included.
func Dedupe(records []apimap.EndpointRecord) []*apimap.EndpointRecord {
	seen := make(map[string]bool, len(records))
	out := make([]*apimap.EndpointRecord, 0, len(records))
	for i := range records {
		rec := records[i]
		if seen[rec.Key()] {
			continue
		}
		seen[rec.Key()] = true
		out = append(out, &rec)
	}
	return out
}
