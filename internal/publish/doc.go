// Package publish delivers rendered documents to a Redis stream.
//
// Each document is appended with XADD under a single "data" field holding a
// JSON envelope:
//
//	{"id": "<uuid>", "document": "<html>", "rendered_at": "<RFC3339>"}
package publish
