package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrTeamNotFound          = crerr.New("team not found in cache")
	ErrTeamsCacheUnreadable  = crerr.New("teams cache unreadable")
	ErrDataProcessing        = crerr.New("data processing failed")
	ErrCalendarWrite         = crerr.New("calendar write failed")
	ErrCalendarBuild         = crerr.New("calendar build failed")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)
