package cmd

import "strconv"

// Formatting helpers for optional roster fields: "-" marks a field the
// service omitted.

func fmtIntPtr(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func fmtBoolPtr(v *bool) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatBool(*v)
}
