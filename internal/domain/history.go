package domain

// RankedList is an ordered sequence of distinct commands, most frequent
// first, ties broken by ascending command text.
type RankedList []string
