package spreadsheet

import (
	"errors"
	"fmt"
)

var ErrNotImplemented = errors.New("not implemented")
var ErrInvalidRequest = errors.New("invalid request")
var ErrMissingReply = errors.New("missing reply")

// ReloadError is returned when a batch update was applied by the service but the follow-up
// fetch failed. The cached document is then older than the remote spreadsheet and Dirty()
// reports true until a subsequent Reload succeeds.
type ReloadError struct {
	SpreadsheetID string
	Err           error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("spreadsheet %v updated but not reloaded (%v)", e.SpreadsheetID, e.Err)
}

func (e *ReloadError) Unwrap() error {
	return e.Err
}
