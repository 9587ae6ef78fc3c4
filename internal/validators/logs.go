package validators

import (
	"errors"
	"strings"

	"github.com/Egor213/tidelogs/internal/domain"
	errorsUtils "github.com/Egor213/tidelogs/pkg/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var logLevels = []any{
	domain.LogLevelError,
	domain.LogLevelWarn,
	domain.LogLevelInfo,
	domain.LogLevelDebug,
}

type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

// ValidateLogEntry checks a submitted entry and returns its normalized copy.
// The level is matched against the canonical set before upper-casing.
func ValidateLogEntry(candidate domain.LogEntry) (domain.LogEntry, error) {
	entry := candidate
	entry.Service = strings.TrimSpace(candidate.Service)
	entry.Message = strings.TrimSpace(candidate.Message)

	err := validation.ValidateStruct(&entry,
		validation.Field(&entry.Service, validation.Required),
		validation.Field(&entry.Level,
			validation.Required,
			validation.In(logLevels...).Error("must be one of ERROR, WARN, INFO, DEBUG"),
		),
		validation.Field(&entry.Message, validation.Required),
	)
	if err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			return domain.LogEntry{}, &ValidationError{Fields: fields}
		}
		return domain.LogEntry{}, errorsUtils.WrapPathErr(err)
	}

	entry.Level = strings.ToUpper(entry.Level)
	if entry.Metadata == nil {
		entry.Metadata = map[string]any{}
	}

	return entry, nil
}
