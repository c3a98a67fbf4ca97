package commands

// Error messages
const (
	ErrSilenceListEmpty = "silence list is empty"
	ErrTopLimitInvalid  = "top limit must be >= 1"
	ErrStatusProblems   = "status found problems"
)

// Informational messages
const (
	MsgCorpusEmpty    = "Corpus is empty."
	MsgNoRunsRecorded = "No runs recorded yet."
	MsgSilenceEmpty   = "Silence list is empty."
	MsgDryRunHeader   = "Planned operations (dry-run):"
)

// Display limits
const (
	// DefaultTopLimit is how many corpus commands "top" shows by default
	DefaultTopLimit = 10
	// DefaultRunsLimit is how many ledger rows "runs" shows by default
	DefaultRunsLimit = 10
)
