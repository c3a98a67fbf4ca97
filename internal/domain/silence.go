package domain

// SilenceReport summarizes an addition to the exclusion set.
type SilenceReport struct {
	// Added lists commands newly written to the set.
	Added []string
	// AlreadyPresent lists requested commands that were in the set before.
	AlreadyPresent []string
	// Total is the set size after the addition.
	Total int
}
