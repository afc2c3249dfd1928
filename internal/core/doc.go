// Package core provides the business logic for audience-analytics datasets.
//
// This package holds all domain logic independent of any transport layer.
// It can be used by web handlers, command-line tools, or tests without
// modification.
//
// # Pipeline
//
// An upload moves through four stages, each a plain function over [Table]:
//
//  1. [ParseTable] decodes CSV bytes and tags every column Numeric, Text or Date
//  2. [Validate] reports blocking errors and advisory warnings
//  3. [Clean] drops fully empty rows and fills missing cells
//  4. [Store.Put] keeps the canonical table under a fresh "file_<n>" id
//
// [GenerateInsights] and [PrepareChartData] read stored tables and never
// modify them. [Service] ties the stages together and is the entry point
// used by the web layer.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE006: File errors (size, encoding, format, type)
//   - VAL001-VAL002: Validation errors (blocking problems, unknown column)
//   - DS001: Dataset errors (unknown id)
//   - UPL001-UPL003: Upload errors (busy, cancelled, timeout)
//   - RATE001: Rate limiting
//
// # Side Effects
//
// Accepted uploads are archived as CSV through an archive.Archiver and every
// upload attempt is recorded through an audit.Recorder. Both are best effort:
// a failure is logged and the upload still succeeds.
package core
