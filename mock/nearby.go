package mock

import (
	"context"

	"github.com/fwojciec/parkdir"
)

var _ parkdir.NearbyService = (*NearbyService)(nil)

// NearbyService is a mock implementation of parkdir.NearbyService.
type NearbyService struct {
	FindNearbyFn func(ctx context.Context, site *parkdir.Site) (*parkdir.NearbySearch, error)
}

func (s *NearbyService) FindNearby(ctx context.Context, site *parkdir.Site) (*parkdir.NearbySearch, error) {
	return s.FindNearbyFn(ctx, site)
}
