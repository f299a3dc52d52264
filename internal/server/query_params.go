package server

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	earningsdomain "github.com/fennecpets/fennec/internal/earnings/domain"
	providerdomain "github.com/fennecpets/fennec/internal/provider/domain"
)

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseMonthsParam reads a history depth. Malformed or missing values
// silently fall back to the default; out-of-range values are clamped
// downstream.
func parseMonthsParam(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return earningsdomain.DefaultHistoryMonths
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return earningsdomain.DefaultHistoryMonths
	}
	return parsed
}

// parseKindParam returns nil when the value is absent, letting callers
// choose a per-endpoint default (the provider's own kind, or all tracks).
func parseKindParam(value string) *providerdomain.Kind {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	kind := providerdomain.ParseKind(trimmed)
	return &kind
}

func parseSnowflakeID(field, value string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || parsed == 0 {
		return 0, newValidationError(field, "invalid_"+field, "invalid identifier")
	}
	return parsed, nil
}
