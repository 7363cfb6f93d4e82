package skemadiff

// Package skemadiff provides:
//
// - Normalization of inferred schemas into the standard object-level required form
// - Flat indexing of a schema tree into addressable field descriptors (JSON Pointer style)
// - Breaking/non-breaking classification of field-level changes between two schema versions
//
// Design policy:
// - Keep only public APIs in the root package; put collaborators behind narrow subpackages.
// - Place payload-to-schema inference under infer/, third-party validation under validate/,
//   and the CLI under cmd/skemadiff.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	base := skemadiff.Normalize(rawBase)
//	next := skemadiff.Normalize(rawNext)
//	report := skemadiff.Summarize(skemadiff.Index(base), skemadiff.Index(next))
//	if report.BreakingCount > 0 { ... }
//
// Or, end to end over raw schemas:
//
//	report := skemadiff.Diff(rawBase, rawNext)
