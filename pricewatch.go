// Package pricewatch extracts structured product records from
// semi-structured e-commerce listing pages. It locates repeating product
// containers in a parsed document tree using ordered fallback patterns,
// pulls out per-field sub-elements the same way, and normalizes free-form
// text into typed fields (price, discount, rating, availability).
//
// This package contains domain types, interfaces, and the pure extraction
// core following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency
// (e.g., goquery/, sqlite/, http/).
package pricewatch
