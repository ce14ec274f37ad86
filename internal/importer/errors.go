// AngelaMos | 2026
// errors.go

package importer

import (
	"errors"
	"strings"
)

var (
	ErrEmptyFile         = errors.New("CSV file is empty")
	ErrNoDataRows        = errors.New("CSV must include header + data rows")
	ErrMissingHeaders    = errors.New("missing required headers")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnreadable        = errors.New("file could not be read")
)

type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return "Missing required headers: " + strings.Join(e.Missing, ", ")
}

func (e *MissingHeadersError) Is(target error) bool {
	return target == ErrMissingHeaders
}

var rejections = []struct {
	err    error
	reason string
}{
	{ErrEmptyFile, "empty_file"},
	{ErrNoDataRows, "no_data_rows"},
	{ErrMissingHeaders, "missing_headers"},
	{ErrUnsupportedFormat, "unsupported_format"},
	{ErrUnreadable, "unreadable"},
}

// IsRejection reports whether err rejects the whole file as bad input,
// as opposed to a store failure.
func IsRejection(err error) bool {
	return rejectReason(err) != ""
}

func rejectReason(err error) string {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ""
}
