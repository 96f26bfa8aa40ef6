package profile

import (
	"context"
)

// Repository is the persistence port for profiles. Save upserts by id;
// FindByID returns ErrNotFound when the id has no stored profile.
type Repository interface {
	FindByID(ctx context.Context, id int64) (Profile, error)
	Save(ctx context.Context, p *Profile) error
	FindAll(ctx context.Context) ([]Profile, error)
}
