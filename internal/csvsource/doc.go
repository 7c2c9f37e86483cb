// Package csvsource reads CSV files into record maps suitable for bulkload.
//
// The first non-empty row is the header; every following row becomes a
// map[string]string keyed by the (lowercased, cleaned) header names. Ragged
// rows are tolerated: short rows simply lack the trailing keys, extra cells
// are dropped. Fully empty rows are skipped.
//
// Processor builds a bulkload.Processor over these records that rejects
// records with missing or empty required columns and formats the chosen
// columns into a Row.
package csvsource
