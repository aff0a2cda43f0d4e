package widgets

import (
	"context"
	"errors"
	"fmt"
)

// SeedPages saves the starter pages, or the supplied ones when given.
func SeedPages(ctx context.Context, service *Service, pages ...SavePageRequest) error {
	if service == nil {
		return errors.New("widgets: service is required to seed pages")
	}
	if len(pages) == 0 {
		pages = DefaultSeedPages()
	}
	var seedErr error
	for _, req := range pages {
		if _, err := service.SavePage(ctx, req); err != nil {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed page %s: %w", req.ID, err))
		}
	}
	return seedErr
}
