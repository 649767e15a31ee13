package schema

import (
	"encoding/json"
	"time"
)

type Digest struct {
	ChatID int64
	At     time.Time
}

func (d *Digest) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

func (d *Digest) Unmarshal(data []byte) error {
	return json.Unmarshal(data, d)
}
