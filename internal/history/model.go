package history

import "time"

// Kinds of searches that are recorded.
const (
	KindRecommendation = "recommendation"
	KindRotation       = "rotation"
	KindMedicine       = "medicine"
)

// Entry is one search a signed-in user made.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Kind      string    `json:"kind"`
	Query     string    `json:"query"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
