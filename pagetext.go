// Package pagetext fetches a single web page and extracts a truncated
// plain-text rendering of its visible content and the absolute URLs of its
// outbound links. It is a building block for crawlers and ingestion
// pipelines; frontier management, politeness and persistence belong to the
// caller.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, slog/).
package pagetext
