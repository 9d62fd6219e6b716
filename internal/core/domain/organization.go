package domain

import "time"

// Organization is the data-producing tenant. Each investee user owns exactly
// one organization; investors attach to organizations via subscriptions.
type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscription links an investor to an organization. Unique per pair.
type Subscription struct {
	ID         int64     `json:"id"`
	InvestorID int64     `json:"investor_id"`
	OrgID      int64     `json:"org_id"`
	CreatedAt  time.Time `json:"created_at"`
}
