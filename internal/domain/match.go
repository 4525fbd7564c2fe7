package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringList is a JSONB-stored list of strings.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// PairDelimiter joins the two uids of a canonical pair key.
const PairDelimiter = "_"

// PairKey returns the canonical key for an unordered user pair: the two uids
// sorted lexicographically, joined with PairDelimiter. Both sides of a mutual
// like derive the same key, which is what makes match creation race-safe.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + PairDelimiter + b
}

// ChatID derives the conversation identifier from the same sorted-pair
// convention.
func ChatID(a, b string) string {
	return "chat_" + PairKey(a, b)
}

// Match is a mutual-like relationship, created exactly once per pair. The
// pairing fields are immutable; Icebreakers is an additive enrichment written
// once after creation.
type Match struct {
	PairKey     string     `json:"pair_key" db:"pair_key"`
	User1UID    string     `json:"user1_uid" db:"user1_uid"`
	User2UID    string     `json:"user2_uid" db:"user2_uid"`
	ChatID      string     `json:"chat_id" db:"chat_id"`
	Icebreakers StringList `json:"icebreakers,omitempty" db:"icebreakers"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// NewMatch builds the canonical match record for two users, in either order.
func NewMatch(a, b string) *Match {
	if b < a {
		a, b = b, a
	}
	return &Match{
		PairKey:  a + PairDelimiter + b,
		User1UID: a,
		User2UID: b,
		ChatID:   ChatID(a, b),
	}
}

func (m *Match) HasUser(uid string) bool {
	return m.User1UID == uid || m.User2UID == uid
}

func (m *Match) OtherUser(uid string) (string, bool) {
	if m.User1UID == uid {
		return m.User2UID, true
	}
	if m.User2UID == uid {
		return m.User1UID, true
	}
	return "", false
}
