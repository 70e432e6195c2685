package scoring

// The rubric uses two different eligibility tests and they are deliberately
// not unified: duration-dated records (projects, IPR, startups, roles) count
// if the appraisal year falls inside their active range, while
// publication-dated records (papers, books) count only on an exact year
// match ("published during the appraisal period"). Records with missing
// date fields fail closed and are silently excluded.

// InYearRange reports whether year falls within [start, end]. An end of 0
// marks an ongoing record; currentYear stands in for its end. A zero start
// means the date was never captured and the record is ineligible.
func InYearRange(start, end, year, currentYear int) bool {
	if start == 0 {
		return false
	}
	if end == 0 {
		end = currentYear
	}
	return start <= year && year <= end
}

// PublishedIn reports whether a publication-dated record counts for the
// appraisal year. Exact match only.
func PublishedIn(pubYear, year int) bool {
	return pubYear != 0 && pubYear == year
}
