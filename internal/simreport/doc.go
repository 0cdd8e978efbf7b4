// Package simreport locates and extracts tabular report data from
// fixed-layout DOE-2/eQUEST simulation output files.
//
// The input has no formal grammar: headers vary between one and three
// physical rows, units sometimes occupy a row of their own, blank
// separators and recurring page headers interleave with data, and the same
// report reappears across page breaks. The pipeline deals with this in four
// stages, each independently testable:
//
//	Locator   - partitions the line stream into report blocks
//	HeaderParser - aligns multi-row headers by column-span overlap
//	Tokenizer - splits data lines into typed cells per a strategy
//	Assembler - merges same-code blocks across pages into one table
//
// The Registry maps report codes to tokenization strategies and supplies a
// heuristic default for unrecognized codes, so extraction is total over
// arbitrary input. Failures are scoped: a bad block or a mismatched
// continuation page is recorded as a diagnostic and skipped without
// aborting the rest of the file.
package simreport
