package models

import "time"

// Counselor is a member of the counseling roster. Mode declares which
// session modes the counselor can serve: "online", "offline" or "both".
type Counselor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"createdAt"`
}

// CanServe reports whether the counselor is eligible for the requested
// session mode. A "both" counselor matches any mode.
func (c *Counselor) CanServe(mode string) bool {
	return c.Mode == mode || c.Mode == "both"
}
