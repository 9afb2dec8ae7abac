package errors

// Diagnostic codes for the grammar tool chain.
//
// Code ranges:
// E0001-E0099: extraction errors (page level)
// E0100-E0199: grammar document errors
// W0001-W0099: warnings

const (
	// E0001: the source page could not be fetched
	ErrorFetchFailed = "E0001"

	// E0002: the page contains no preformatted grammar blocks
	ErrorNoBlocks = "E0002"

	// E0003: block count differs from the expected rule count
	ErrorCountMismatch = "E0003"

	// E0004: a block has no '::=' delimiter or no rule name
	ErrorMalformedBlock = "E0004"

	// E0100: a production could not be parsed into symbols
	ErrorUnparsableProduction = "E0100"

	// W0001: an alternative has no tokens
	WarningEmptyAlternative = "W0001"

	// W0002: a '{' group is never closed by '}*'
	WarningUnterminatedGroup = "W0002"

	// W0003: a production references a symbol that is not defined anywhere
	WarningUndefinedSymbol = "W0003"
)

// GetErrorDescription returns a human-readable description of the code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorFetchFailed:
		return "Source page could not be fetched"
	case ErrorNoBlocks:
		return "No preformatted grammar blocks found"
	case ErrorCountMismatch:
		return "Number of grammar blocks differs from the expected rule count"
	case ErrorMalformedBlock:
		return "Grammar block is missing the '::=' delimiter or the rule name"
	case ErrorUnparsableProduction:
		return "Production tokens do not form valid symbols and groups"
	case WarningEmptyAlternative:
		return "Alternative has no tokens and was skipped"
	case WarningUnterminatedGroup:
		return "Repeat group was never closed and its fragment was discarded"
	case WarningUndefinedSymbol:
		return "Symbol is neither a rule, a bottom rule nor a terminal"
	default:
		return "Unknown diagnostic"
	}
}
