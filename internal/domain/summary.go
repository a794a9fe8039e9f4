package domain

import "sort"

// MonthlySummary is a month x year table of accident counts. Rows are the
// months present in the data, columns the years present, both ascending.
type MonthlySummary struct {
	Months []int
	Years  []int
	counts map[MonthYear]int
}

// Summarize groups rows by (year, month), counts them and pivots the counts
// into a MonthlySummary.
func Summarize(rows []MonthYear) MonthlySummary {
	counts := make(map[MonthYear]int)
	months := make(map[int]bool)
	years := make(map[int]bool)
	for _, r := range rows {
		counts[r]++
		months[r.Month] = true
		years[r.Year] = true
	}
	return MonthlySummary{
		Months: sortedKeys(months),
		Years:  sortedKeys(years),
		counts: counts,
	}
}

// Count returns the number of accidents in month of year. ok is false when
// the combination has no records; such cells are absent rather than zero.
func (s MonthlySummary) Count(month, year int) (n int, ok bool) {
	n, ok = s.counts[MonthYear{Month: month, Year: year}]
	return n, ok
}

// Total returns the number of accidents counted for year.
func (s MonthlySummary) Total(year int) int {
	total := 0
	for k, n := range s.counts {
		if k.Year == year {
			total += n
		}
	}
	return total
}

// Empty reports whether the summary has no cells.
func (s MonthlySummary) Empty() bool { return len(s.counts) == 0 }

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
