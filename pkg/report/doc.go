// Package report reads, writes and compares the third-party license report.
//
// # Format
//
// The report is UTF-8 CSV with the header
//
//	Component,Origin,License,Copyright
//
// and one [Row] per component, sorted by component, then origin, license and
// copyright. Fields are quoted per RFC 4180 only when needed. Lines end in LF.
// The byte layout is a compatibility contract with compliance tooling, so
// [Encode] output must stay stable.
//
// # Rows and Records
//
// [Collapse] projects resolved records onto rows. Rows carry no version:
// several versions of one package with identical details become one row, and
// packages that share every detail except their name (typically crates split
// out of one repository) are folded into the one named by the repository.
//
// # Checking
//
// [Diff] compares two row sets independent of order and reports field-level
// differences per component. [Check] additionally flags layout drift, where
// the persisted text differs from the canonical encoding even though the
// contents match.
package report
