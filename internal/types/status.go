package types

import (
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/samber/lo"
)

// Status is the lifecycle status of a persisted record
type Status string

const (
	StatusPublished Status = "published"
	StatusDeleted   Status = "deleted"
	StatusArchived  Status = "archived"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() error {
	allowed := []Status{
		StatusPublished,
		StatusDeleted,
		StatusArchived,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid status").
			WithHint("Invalid status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
