package notify

import (
	"encoding/json"
	"time"
)

// Event kinds published on the notification exchange.
const (
	KindChallengeCompleted  = "challenge_completed"
	KindAchievementUnlocked = "achievement_unlocked"
	KindLevelUp             = "level_up"
	KindBudgetAlert         = "budget_alert"
	KindTransactionLogged   = "transaction_logged"
)

// Notification is one display-ready event for the notification consumer.
// The engine already applied any reward; consumers only render.
type Notification struct {
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail,omitempty"`
	XP        int       `json:"xp,omitempty"`
	Level     int       `json:"level,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func NotificationFromJSON(data []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
