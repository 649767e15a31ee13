package birthday

import (
	"birthdaybot/internal/core/domain/dates"
	"time"
)

// ChatID identifies the chat that owns a set of birthday records.
// Every query is scoped by it.
type ChatID int64

// ServiceTag marks the contact platform a record's handle belongs to.
type ServiceTag struct {
	v string
}

var (
	ServiceNone     = ServiceTag{}
	ServiceWhatsapp = ServiceTag{v: "whatsapp"}
	ServiceTelegram = ServiceTag{v: "telegram"}
)

func (t ServiceTag) String() string {
	return t.v
}

// ParseServiceTag accepts the closed set of known tags, an empty token
// equals ServiceNone. Matching is exact and case-sensitive.
func ParseServiceTag(raw string) (ServiceTag, error) {
	switch raw {
	case "":
		return ServiceNone, nil
	case "whatsapp":
		return ServiceWhatsapp, nil
	case "telegram":
		return ServiceTelegram, nil
	}
	return ServiceTag{}, ErrInvalidServiceTag
}

// DecodeServiceTag maps a stored token to a tag without failing,
// unknown tokens collapse to ServiceNone. Rows written by an older
// validation revision must not break reads.
func DecodeServiceTag(raw string) ServiceTag {
	tag, err := ParseServiceTag(raw)
	if err != nil {
		return ServiceNone
	}
	return tag
}

type ID int64

// Record is one stored birthday entry, keyed by (owner, name).
type Record struct {
	ID        ID
	Owner     ChatID
	Name      string
	Date      dates.Date
	Service   ServiceTag
	Handle    string
	CreatedAt time.Time
}

type CreateInput struct {
	Owner     ChatID
	Name      string
	Date      dates.Date
	Service   ServiceTag
	Handle    string
	CreatedAt time.Time
}
