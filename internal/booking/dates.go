// README: Date reformatting between ISO, partner DDMMYYYY, and shareable YYMMDD forms.
package booking

import "strings"

// toDDMMYYYY turns "2025-03-05" into "05032025". Pure string slicing: it
// does not validate the calendar date, and returns the input unchanged when
// the split does not yield exactly three non-empty parts. Callers reformat
// already-validated dates only.
func toDDMMYYYY(iso string) string {
	y, m, d, ok := splitISO(iso)
	if !ok {
		return iso
	}
	return d + m + y
}

// toYYMMDD turns "2025-03-05" into "250305" for the compact shareable link.
func toYYMMDD(iso string) string {
	y, m, d, ok := splitISO(iso)
	if !ok {
		return iso
	}
	if len(y) > 2 {
		y = y[len(y)-2:]
	}
	return y + m + d
}

// fromDDMMYYYY reverses toDDMMYYYY. Returns "" when the input is not eight digits.
func fromDDMMYYYY(s string) string {
	if len(s) != 8 {
		return ""
	}
	for i := 0; i < 8; i++ {
		if s[i] < '0' || s[i] > '9' {
			return ""
		}
	}
	return s[4:8] + "-" + s[2:4] + "-" + s[0:2]
}

func splitISO(iso string) (y, m, d string, ok bool) {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
