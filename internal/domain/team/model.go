package team

import (
	"fmt"
	"strings"
)

// Team is an amateur side captained by one user.
type Team struct {
	ID        string
	Name      string
	City      string
	CaptainID string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.CaptainID == "" {
		return fmt.Errorf("team captain id is required")
	}

	return nil
}

func (t Team) IsCaptain(userID string) bool {
	return userID != "" && t.CaptainID == userID
}

// NamesByID indexes display names for the standings table.
func NamesByID(items []Team) map[string]string {
	out := make(map[string]string, len(items))
	for _, item := range items {
		out[item.ID] = item.Name
	}
	return out
}
