package domain

import "time"

// SwipeAction is a like or a pass.
type SwipeAction string

const (
	SwipeLike SwipeAction = "like"
	SwipePass SwipeAction = "pass"
)

func (a SwipeAction) Valid() bool {
	return a == SwipeLike || a == SwipePass
}

// Swipe is a directional decision from one user toward another. At most one
// decision exists per ordered pair; a later decision overwrites the earlier
// one.
type Swipe struct {
	FromUID   string      `json:"from_uid" db:"from_uid"`
	ToUID     string      `json:"to_uid" db:"to_uid"`
	Action    SwipeAction `json:"action" db:"action"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
