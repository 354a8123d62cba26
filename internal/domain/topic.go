package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TopicID is the numeric identity of a topic.
type TopicID int32

func (id TopicID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseTopicID parses the decimal form produced by TopicID.String.
func ParseTopicID(s string) (TopicID, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, NewValidationError("topic_id", "must be a number")
	}
	if n <= 0 {
		return 0, NewValidationError("topic_id", "must be positive")
	}
	return TopicID(n), nil
}

// Topic is a named group of related changes reviewed and submitted together.
type Topic struct {
	ID               TopicID
	Key              string
	Project          string
	Owner            uuid.UUID
	Status           TopicStatus
	SortKey          string
	Subject          string
	CurrentChangeSet int32
	CreatedOn        time.Time
	LastUpdatedOn    time.Time
}

// NewSortKey returns the cursor key of a topic last updated at updated.
// The id suffix makes keys unique, so topics updated in the same
// microsecond still order strictly.
func NewSortKey(updated time.Time, id TopicID) string {
	return fmt.Sprintf("%016x%08x", updated.UnixMicro(), uint32(id))
}

// CurrentChangeSetID returns the id of the topic's newest change-set.
func (t *Topic) CurrentChangeSetID() ChangeSetID {
	return ChangeSetID{TopicID: t.ID, Num: t.CurrentChangeSet}
}

// ChangeSetID identifies one revision of a topic.
type ChangeSetID struct {
	TopicID TopicID
	Num     int32
}

// TopicInfo is the list-row view of a topic.
type TopicInfo struct {
	ID            TopicID     `json:"id"`
	Key           string      `json:"key"`
	Subject       string      `json:"subject"`
	Project       string      `json:"project"`
	Owner         uuid.UUID   `json:"owner"`
	Status        TopicStatus `json:"status"`
	SortKey       string      `json:"sortKey"`
	LastUpdatedOn time.Time   `json:"lastUpdatedOn"`
}

// NewTopicInfo builds the list-row view of t.
func NewTopicInfo(t *Topic) TopicInfo {
	return TopicInfo{
		ID:            t.ID,
		Key:           t.Key,
		Subject:       t.Subject,
		Project:       t.Project,
		Owner:         t.Owner,
		Status:        t.Status,
		SortKey:       t.SortKey,
		LastUpdatedOn: t.LastUpdatedOn,
	}
}
