// Package phscrape provides a scraper for a product-discovery website.
// It classifies crawled URLs as listing or post pages, extracts a fixed set
// of fields from post pages using ordered fallback CSS selectors, and appends
// each extracted record to an output sink.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package phscrape
