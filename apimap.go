// Package apimap provides a heuristic crawler for REST API documentation
// sites. It performs a bounded breadth-first traversal of a documentation
// site, extracts (method, path) endpoint candidates from page text using a
// set of independent pattern matchers, deduplicates them, and can
// synthesize short natural-language descriptions from the crawled text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package apimap
