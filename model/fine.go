package model

// FineStatus is the lifecycle state of a fine record.
type FineStatus string

const (
	FineStatusOpen   FineStatus = "open"
	FineStatusClosed FineStatus = "closed"
)

// FineRecord is one issued traffic fine as persisted in the fines file.
// Only Status, ClosedBy and ClosedAt change after creation.
type FineRecord struct {
	FineNumber  int64      `json:"fineNumber"`
	Officer     string     `json:"officer"`
	OfficerID   string     `json:"officerId"`
	FinedUser   string     `json:"finedUser"`
	FinedUserID string     `json:"finedUserId"`
	Reason      string     `json:"reason"`
	City        string     `json:"city"`
	Plate       string     `json:"plate"`
	Amount      int64      `json:"amount"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Status      FineStatus `json:"status"`
	ChannelID   string     `json:"channelId,omitempty"`
	ClosedBy    string     `json:"closedBy,omitempty"`
	ClosedAt    string     `json:"closedAt,omitempty"`
}

// IsOpen reports whether the case has not been closed yet.
func (r *FineRecord) IsOpen() bool {
	return r.Status == FineStatusOpen
}
