package domain

import "strings"

// TopicStatus is the lifecycle state of a topic.
type TopicStatus string

const (
	TopicStatusNew       TopicStatus = "new"
	TopicStatusSubmitted TopicStatus = "submitted"
	TopicStatusMerged    TopicStatus = "merged"
	TopicStatusAbandoned TopicStatus = "abandoned"
)

// AllTopicStatuses lists every status in declaration order.
var AllTopicStatuses = []TopicStatus{
	TopicStatusNew,
	TopicStatusSubmitted,
	TopicStatusMerged,
	TopicStatusAbandoned,
}

func (s TopicStatus) String() string { return string(s) }

func (s TopicStatus) IsValid() bool {
	switch s {
	case TopicStatusNew, TopicStatusSubmitted, TopicStatusMerged, TopicStatusAbandoned:
		return true
	}
	return false
}

// ParseTopicStatus parses a status name, case-insensitively.
func ParseTopicStatus(s string) (TopicStatus, bool) {
	st := TopicStatus(strings.ToLower(s))
	return st, st.IsValid()
}

// IsOpen reports whether the topic still accepts review.
func (s TopicStatus) IsOpen() bool {
	return s == TopicStatusNew || s == TopicStatusSubmitted
}

// IsClosed reports whether the topic is merged or abandoned.
func (s TopicStatus) IsClosed() bool {
	return s == TopicStatusMerged || s == TopicStatusAbandoned
}

// OpenTopicStatuses returns the statuses for which IsOpen is true.
func OpenTopicStatuses() []TopicStatus {
	return filterStatuses(TopicStatus.IsOpen)
}

// ClosedTopicStatuses returns the statuses for which IsClosed is true.
func ClosedTopicStatuses() []TopicStatus {
	return filterStatuses(TopicStatus.IsClosed)
}

func filterStatuses(keep func(TopicStatus) bool) []TopicStatus {
	var out []TopicStatus
	for _, s := range AllTopicStatuses {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// ScanDirection orders a cursor scan.
type ScanDirection string

const (
	// ScanDescending walks toward older topics (sort keys below the cursor).
	ScanDescending ScanDirection = "desc"
	// ScanAscending walks toward newer topics (sort keys above the cursor).
	ScanAscending ScanDirection = "asc"
)

func (d ScanDirection) String() string { return string(d) }

func (d ScanDirection) IsValid() bool {
	return d == ScanDescending || d == ScanAscending
}

// TieBreak decides which of two equally strong approval values wins.
type TieBreak string

const (
	TieBreakNegative TieBreak = "negative"
	TieBreakPositive TieBreak = "positive"
)

func (t TieBreak) String() string { return string(t) }

func (t TieBreak) IsValid() bool {
	return t == TieBreakNegative || t == TieBreakPositive
}
