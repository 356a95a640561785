package schema

import (
	"time"
)

// EnvelopeOrder is the audit row recorded for every envelope the service
// builds. The envelope body itself lives in the raw store keyed by Hash.
type EnvelopeOrder struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"createdAt"`

	Command   string `gorm:"index:idx_order_cmd" json:"command"`
	Domain    string `gorm:"index:idx_order_domain" json:"domain"`
	Requester string `gorm:"index:idx_order_requester" json:"requester"`
	Memo      string `json:"memo"`
	Hash      string `gorm:"index:idx_order_hash,unique" json:"hash"`
	Network   string `json:"network"`
}

// EnvelopeEvent is the message published to the event stream for every
// built envelope.
type EnvelopeEvent struct {
	Command   string `json:"command"`
	Domain    string `json:"domain"`
	Requester string `json:"requester"`
	Memo      string `json:"memo"`
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"`
}
