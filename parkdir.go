// Package parkdir provides an interactive directory of national park sites.
// It resolves a state to the sites it contains, extracts site details from
// the catalog pages, and enriches a chosen site with nearby places from an
// external search service. Every outbound request goes through a durable
// fetch-or-cache gateway.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, mapquest/).
package parkdir
