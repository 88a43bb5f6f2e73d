package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	Create(ctx context.Context, item League) error
	Update(ctx context.Context, item League) error
	ListMemberships(ctx context.Context, leagueID string) ([]Membership, error)
	AddMembership(ctx context.Context, item Membership) error
	RemoveMembership(ctx context.Context, leagueID, teamID string) error
}
