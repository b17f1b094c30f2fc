// Package ingest implements the transaction-file validation pipeline.
//
// The pipeline decides, before any analytics runs, whether an uploaded
// delimited-text file is usable and reports precisely what is wrong and
// where. Stages run in strict sequence: file gatekeeping, text decoding,
// delimiter inference, quote-aware tokenization, structural validation,
// per-row field validation with cross-row accumulators, and corpus-level
// statistical health checks. The product of a run is a single immutable
// domain.DataValidationResult.
//
// Data flows strictly forward (bytes -> text -> records -> report); no
// stage mutates another stage's output. The whole table is validated in
// one synchronous pass, so memory use is proportional to file size.
package ingest
