// Package model defines the bot database entities.
package model

import (
	"fmt"
	"time"
)

// Bot represents one row of the Bots table. JSON tags follow the
// database column names, which are part of the external contract.
type Bot struct {
	ID                    int64  `json:"Bot_ID"`
	Name                  string `json:"Botperson_Name"`
	PersonRole            string `json:"Botperson_Role,omitempty"`
	Role                  string `json:"Role,omitempty"`
	Usage                 string `json:"Usage,omitempty"`
	Sector                string `json:"Sector,omitempty"`
	Prompt                string `json:"Prompt,omitempty"`
	TotalInteractions     int64  `json:"Total_Interactions"`
	PositiveFeedbackCount int64  `json:"Positive_Feedback_Count"`
	NegativeFeedbackCount int64  `json:"Negative_Feedback_Count"`
	LevelOfAccess         string `json:"Level_of_Access,omitempty"`
	ActiveStatus          string `json:"Active_Status,omitempty"`
	Version               string `json:"Version,omitempty"`
	OwnerMaintainer       string `json:"Owner_Maintainer,omitempty"`
	FoundationBusiness    string `json:"Foundation_Business,omitempty"`
	FoundationName        string `json:"Foundation_Name,omitempty"`
	LastUpdated           string `json:"Last_Updated,omitempty"`
}

// KnowledgeEntry represents one row of the KnowledgeBase table.
type KnowledgeEntry struct {
	ID       int64  `json:"ID"`
	Content  string `json:"Content,omitempty"`
	Metadata string `json:"Metadata,omitempty"`
}

// BotKnowledgeLink is one (bot, knowledge entry) pair from the join table.
// The pair is unique; links are never edited in place.
type BotKnowledgeLink struct {
	BotID       int64 `json:"Bot_ID"`
	KnowledgeID int64 `json:"KnowledgeBase_ID"`
}

// ValidationError reports a missing required field. It is raised by the
// caller before any query runs, never by the store itself.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// DefaultBot returns a bot pre-filled with the standard operator defaults.
func DefaultBot(now time.Time) Bot {
	return Bot{
		LevelOfAccess:      "Full",
		ActiveStatus:       "Active",
		Version:            "1.0",
		OwnerMaintainer:    "Bahrain E-GOV",
		FoundationBusiness: "Bahrain E-GOV",
		FoundationName:     "Bahrain E-GOV",
		LastUpdated:        now.Format("2006-01-02"),
	}
}

// DefaultKnowledgeEntry returns a knowledge entry with placeholder content.
func DefaultKnowledgeEntry() KnowledgeEntry {
	return KnowledgeEntry{
		Content:  "Sample Document",
		Metadata: "Sample Metadata",
	}
}

// Validate checks the fields every bot must carry before it is stored.
func (b *Bot) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"Botperson_Name", b.Name},
		{"Botperson_Role", b.PersonRole},
		{"Role", b.Role},
		{"Usage", b.Usage},
		{"Sector", b.Sector},
		{"Prompt", b.Prompt},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field}
		}
	}
	return nil
}
