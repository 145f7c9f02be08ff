package engine

import (
	"context"

	"github.com/launchpick/launchpick/internal/enrich"
	"github.com/launchpick/launchpick/internal/model"
)

// Enricher defines the contract for the external enrichment collaborator.
type Enricher interface {
	Enrich(ctx context.Context, req enrich.Request) (*model.Profile, error)
}
