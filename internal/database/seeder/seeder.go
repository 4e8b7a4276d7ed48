package seeder

import "context"

// Seeder loads one slice of reference data. Running it twice leaves the store unchanged.
type Seeder interface {
	Name() string
	Run(ctx context.Context) error
}
