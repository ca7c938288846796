package ports

import "context"

// ProfileCache is an optional read-through cache for profile lookups.
// Get returns (nil, nil) on a miss. The cache is best-effort: callers treat
// any error as a miss and fall back to the repository.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Set(ctx context.Context, userID string, p *Profile) error
	Invalidate(ctx context.Context, userID string) error
}
