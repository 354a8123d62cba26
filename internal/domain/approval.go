package domain

import (
	"time"

	"github.com/google/uuid"
)

// Approval is a per-category numeric review vote recorded against a change-set.
type Approval struct {
	ChangeSet ChangeSetID `json:"-"`
	Account   uuid.UUID   `json:"account"`
	Category  string      `json:"category"`
	Value     int16       `json:"value"`
	GrantedOn time.Time   `json:"grantedOn"`
}

// ApprovalCategory describes one voting category and its legal value range.
type ApprovalCategory struct {
	ID       string
	Name     string
	Position int
	MinValue int16
	MaxValue int16
}

// Normalize clamps value into the category's legal range.
func (c ApprovalCategory) Normalize(value int16) int16 {
	switch {
	case value < c.MinValue:
		return c.MinValue
	case value > c.MaxValue:
		return c.MaxValue
	}
	return value
}
