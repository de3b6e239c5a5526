// Package anuncio extracts structured vehicle-listing data from OLX
// classified-ad pages. The site's markup is unstable and partially
// rendered client-side, so every field is located through an ordered
// chain of independent strategies with a normalization pass on top,
// and pages are acquired through a dynamic (headless browser) backend
// with a static HTTP fallback.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g. goquery/,
// rod/, sqlite/).
package anuncio
