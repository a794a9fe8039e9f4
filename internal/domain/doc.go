// Package domain models NHTSA Fatality Analysis Reporting System (FARS)
// accident records.
//
// # Data Source
//
// FARS publishes one accident file per year. This project reads the
// bzip2-compressed CSV archives named
//
//	accident_<year>.csv.bz2   e.g. accident_2013.csv.bz2
//
// from a local data directory. The file name is a pure function of the year,
// see [Filename]. One row is one fatal crash.
//
// # Columns
//
// Only four columns are interpreted; every other column is kept verbatim in
// [AccidentRecord.Fields]:
//
//	MONTH     integer 1-12, month of the crash
//	STATE     integer state code (1 = Alabama ... 56 = Wyoming)
//	LONGITUD  decimal degrees, negative west of Greenwich
//	LATITUDE  decimal degrees
//
// # Unknown values
//
// FARS encodes "not reported" coordinates as out-of-range sentinels instead
// of leaving the cell empty:
//
//	LONGITUD >= 900  (777.7777, 888.8888, 999.9999)  unknown
//	LATITUDE  > 90   (99.9999, ...)                    unknown
//
// [SanitizeCoordinates] replaces them with nil. The row itself is kept so it
// still counts towards monthly totals.
//
// # Monthly summary
//
// [Summarize] counts records per (year, month) and pivots the counts into a
// month x year table. Combinations with no records are absent, not zero.
package domain
