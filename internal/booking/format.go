// README: Closed set of booking link formats and their decode capability.
package booking

import "errors"

// Format names one of the partner link encodings. The set is closed: every
// variant declares up front whether a decoder exists for it, so callers find
// out about write-only formats before runtime surprises.
type Format string

const (
	// FormatBooking is the full web booking URL. Encode and decode.
	FormatBooking Format = "booking"
	// FormatShareable is the compact /s link. Write-only.
	FormatShareable Format = "shareable"
	// FormatDeepLink is the native-app URI scheme. Write-only.
	FormatDeepLink Format = "deeplink"
)

var (
	ErrUnknownFormat      = errors.New("unknown link format")
	ErrFormatNotDecodable = errors.New("link format has no decoder")
	ErrIncompleteSpec     = errors.New("specification missing fields required for encoding")
)

// CanDecode reports whether a decoder exists for the format. Only the full
// booking URL is decodable; shareable and deep links are lossy.
func (f Format) CanDecode() bool {
	return f == FormatBooking
}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case FormatBooking, FormatShareable, FormatDeepLink:
		return true
	}
	return false
}
