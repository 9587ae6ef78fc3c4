package domain

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// LogFilter is request scoped. A nil field means the parameter was not given.
type LogFilter struct {
	Service *string
	Level   *string
	Limit   *int64
	Offset  *int64
}

// Page returns the effective limit and offset. Limits above MaxLimit are
// clamped; negative values are left for the store to reject.
func (f LogFilter) Page() (limit, offset int64) {
	limit = DefaultLimit
	if f.Limit != nil {
		limit = min(*f.Limit, MaxLimit)
	}

	if f.Offset != nil {
		offset = *f.Offset
	}

	return limit, offset
}
