package model

import "time"

// BannedIP представляет заблокированный IP-адрес.
// Флаг IsApprovedByAdmin исторически инвертирован: false означает
// действующий бан, true — адрес одобрен и может постить снова.
type BannedIP struct {
	IPAddress         string    `json:"ip_address" db:"ip_address"`
	IsApprovedByAdmin bool      `json:"is_approved_by_admin" db:"is_approved_by_admin"`
	Reason            string    `json:"reason" db:"reason"`
	BannedAt          time.Time `json:"banned_at" db:"banned_at"`
}

// Blocked сообщает, действует ли бан в данный момент
func (b BannedIP) Blocked() bool {
	return !b.IsApprovedByAdmin
}
