package league

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StatusDraft     = "DRAFT"
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
)

// MinTeamsToLock is the smallest roster a league can be locked with.
const MinTeamsToLock = 2

var (
	ErrLeagueLocked      = errors.New("league is locked")
	ErrLeagueNotLocked   = errors.New("league is not locked")
	ErrInsufficientTeams = errors.New("league has insufficient teams")
	ErrAlreadyMember     = errors.New("team already in league")
)

// League is an amateur competition organized by one owner.
type League struct {
	ID        string
	Name      string
	City      string
	Season    string
	StartDate string
	OwnerID   string
	Status    string
	CreatedAt time.Time
}

// Membership links a team to a league. JoinedAt drives the order in which
// teams are fed to the fixture generator.
type Membership struct {
	LeagueID string
	TeamID   string
	JoinedAt time.Time
}

// Filter narrows league listings. Empty fields match everything.
type Filter struct {
	City   string
	Status string
	Search string
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if strings.TrimSpace(l.City) == "" {
		return fmt.Errorf("league city is required")
	}
	if l.OwnerID == "" {
		return fmt.Errorf("league owner id is required")
	}
	if !IsValidStatus(l.Status) {
		return fmt.Errorf("league status %q is invalid", l.Status)
	}

	return nil
}

// IsLocked reports whether the roster is frozen.
func (l League) IsLocked() bool {
	return NormalizeStatus(l.Status) != StatusDraft
}

func (l League) IsOwnedBy(userID string) bool {
	return userID != "" && l.OwnerID == userID
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusDraft
	}
	return status
}

func IsValidStatus(value string) bool {
	switch NormalizeStatus(value) {
	case StatusDraft, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

// Matches reports whether the league passes the filter.
func (f Filter) Matches(l League) bool {
	if city := strings.TrimSpace(f.City); city != "" && !strings.EqualFold(city, l.City) {
		return false
	}
	if status := strings.TrimSpace(f.Status); status != "" && NormalizeStatus(status) != NormalizeStatus(l.Status) {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), search) ||
		strings.Contains(strings.ToLower(l.City), search)
}
