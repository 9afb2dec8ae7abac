package extract

import "errors"

var (
	ErrNoBlocks       = errors.New("no preformatted blocks found")
	ErrCountMismatch  = errors.New("block count does not match the expected rule count")
	ErrMalformedBlock = errors.New("malformed grammar block")
)
