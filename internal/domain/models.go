package domain

import (
	"time"
)

// FlowState names the step of the multi-turn cat registration flow a user is
// currently in. The zero value means no flow is in progress.
type FlowState string

const (
	FlowNone          FlowState = ""
	FlowAwaitingName  FlowState = "awaiting_name"
	FlowAwaitingGrams FlowState = "awaiting_grams"
	FlowAwaitingFeeds FlowState = "awaiting_feeds"
)

// Valid reports whether the state is one of the defined flow steps.
func (s FlowState) Valid() bool {
	switch s {
	case FlowNone, FlowAwaitingName, FlowAwaitingGrams, FlowAwaitingFeeds:
		return true
	}
	return false
}

// Active reports whether a registration flow is in progress.
func (s FlowState) Active() bool {
	return s != FlowNone
}

// User represents a telegram user in the system. The chat id is assigned by
// telegram and doubles as the primary key.
type User struct {
	ChatID       int64 `gorm:"primaryKey;autoIncrement:false"`
	FirstName    string
	LastName     string
	Username     string
	RegisteredAt time.Time

	// ActiveFlow and PendingCatID together describe the registration flow in
	// progress: PendingCatID points at the incomplete cat the flow is filling
	// in and is set exactly when ActiveFlow is active.
	ActiveFlow   FlowState
	PendingCatID *uint

	// SelectedCatID is the cat currently chosen via /choosecat for feed and
	// delete actions.
	SelectedCatID *uint
}

// Cat represents a cat owned by a user, with its daily feeding targets.
type Cat struct {
	ID         uint  `gorm:"primaryKey"`
	UserChatID int64 `gorm:"index"`
	CreatedAt  time.Time

	Name        string
	GramsPerDay int
	FeedsPerDay int
	FeedsToday  int
}

// Complete reports whether the registration flow finished for this cat.
// FeedsPerDay is filled in on the final flow step.
func (c *Cat) Complete() bool {
	return c.Name != "" && c.GramsPerDay > 0 && c.FeedsPerDay > 0
}
