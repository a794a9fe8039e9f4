package domain

// Names of the columns interpreted by the loader.
const (
	ColMonth     = "MONTH"
	ColState     = "STATE"
	ColLongitude = "LONGITUD"
	ColLatitude  = "LATITUDE"
)

// RequiredColumns lists the columns every yearly archive must carry.
var RequiredColumns = []string{ColMonth, ColState, ColLongitude, ColLatitude}

// AccidentRecord is one row of a yearly FARS accident file.
type AccidentRecord struct {
	Month     int
	State     int
	Longitude *float64 // nil when unknown
	Latitude  *float64 // nil when unknown

	// Fields holds every raw column value in header order.
	Fields []string
}

// AccidentTable is a loaded yearly file: the header and its rows in file order.
type AccidentTable struct {
	Columns []string
	Records []AccidentRecord
}

// Len returns the number of records.
func (t AccidentTable) Len() int { return len(t.Records) }

// States returns the distinct state codes in first-seen order.
func (t AccidentTable) States() []int {
	seen := make(map[int]bool)
	var out []int
	for i := range t.Records {
		s := t.Records[i].State
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// HasState reports whether any record carries the given state code.
func (t AccidentTable) HasState(state int) bool {
	for i := range t.Records {
		if t.Records[i].State == state {
			return true
		}
	}
	return false
}

// FilterState returns the records of one state, keeping file order.
func (t AccidentTable) FilterState(state int) []AccidentRecord {
	var out []AccidentRecord
	for i := range t.Records {
		if t.Records[i].State == state {
			out = append(out, t.Records[i])
		}
	}
	return out
}

// MonthYear is a record projected down to its month and the year of the
// file it was loaded from.
type MonthYear struct {
	Month int
	Year  int
}

// Project tags every record of a yearly table with year.
func Project(t AccidentTable, year int) []MonthYear {
	out := make([]MonthYear, len(t.Records))
	for i := range t.Records {
		out[i] = MonthYear{Month: t.Records[i].Month, Year: year}
	}
	return out
}

// YearResult is the outcome of loading one requested year. Exactly one of
// Records and Err is meaningful: a failed year has a non-nil Err.
type YearResult struct {
	Input   string // the year as requested
	Year    int    // zero when Input could not be coerced
	Records []MonthYear
	Err     error
}

// OK reports whether the year loaded successfully.
func (r YearResult) OK() bool { return r.Err == nil }
