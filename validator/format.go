package validator

import (
	"net/netip"
	"time"

	"github.com/gofrs/uuid"

	"github.com/oasguard/oasguard/guarderrors"
	"github.com/oasguard/oasguard/internal/stringutil"
)

// Formats the engine can check. Every other format value that parses into
// the model (uri, hostname, password, json-pointer, ...) fails closed with
// an unsupported-format error rather than silently passing.
const (
	formatEmail    = "email"
	formatDate     = "date"
	formatTime     = "time"
	formatDateTime = "date-time"
	formatUUID     = "uuid"
	formatIPv4     = "ipv4"
	formatIPv6     = "ipv6"
)

// formatError builds the standard format-violation error for a field.
func formatError(kind, field, value string) *guarderrors.RequestError {
	return guarderrors.NewRequestError("", guarderrors.KindFormatViolation, field,
		"invalid %s format for parameter '%s': '%s'", kind, field, value)
}

// checkFormat verifies a value against a declared string format.
// An absent format always passes. A present format requires a string value.
func checkFormat(field string, value any, format string) *guarderrors.RequestError {
	if format == "" {
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return guarderrors.NewRequestError("", guarderrors.KindFormatViolation, field,
			"the value of '%s' must be a string to check format '%s'", field, format)
	}

	switch format {
	case formatEmail:
		if !stringutil.IsValidEmail(str) {
			return formatError("Email", field, str)
		}
	case formatDate:
		if _, err := time.Parse("2006-01-02", str); err != nil {
			return formatError("Date", field, str)
		}
	case formatTime:
		if _, err := time.Parse("15:04:05", str); err != nil {
			return formatError("Time", field, str)
		}
	case formatDateTime:
		if _, err := time.Parse(time.RFC3339, str); err != nil {
			return formatError("DateTime", field, str)
		}
	case formatUUID:
		if _, err := uuid.FromString(str); err != nil {
			return formatError("UUID", field, str)
		}
	case formatIPv4:
		addr, err := netip.ParseAddr(str)
		if err != nil || !addr.Is4() {
			return formatError("IPv4", field, str)
		}
	case formatIPv6:
		addr, err := netip.ParseAddr(str)
		if err != nil || !addr.Is6() {
			return formatError("IPv6", field, str)
		}
	default:
		return guarderrors.NewRequestError("", guarderrors.KindFormatViolation, field,
			"unsupported format '%s' for parameter '%s'", format, field)
	}

	return nil
}
