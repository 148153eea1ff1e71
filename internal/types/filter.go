package types

// BaseFilter is implemented by filters that support pagination
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	IsUnlimited() bool
}

const (
	FilterDefaultLimit = 50
	FilterMaxLimit     = 1000
)

// QueryFilter holds common pagination options for list queries
type QueryFilter struct {
	Limit  *int `json:"limit,omitempty" form:"limit"`
	Offset *int `json:"offset,omitempty" form:"offset"`
}

func NewDefaultQueryFilter() *QueryFilter {
	limit := FilterDefaultLimit
	offset := 0
	return &QueryFilter{Limit: &limit, Offset: &offset}
}

// NewNoLimitQueryFilter returns a filter that disables pagination
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{}
}

func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return FilterDefaultLimit
	}
	if *f.Limit > FilterMaxLimit {
		return FilterMaxLimit
	}
	return *f.Limit
}

func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return 0
	}
	return *f.Offset
}

func (f *QueryFilter) IsUnlimited() bool {
	return f == nil || f.Limit == nil
}

// AccountFilter filters account listings for read-side views
type AccountFilter struct {
	*QueryFilter
	SubscriptionID string `json:"subscription_id,omitempty" form:"subscription_id"`
	UnassignedOnly bool   `json:"unassigned_only,omitempty" form:"unassigned_only"`
}
