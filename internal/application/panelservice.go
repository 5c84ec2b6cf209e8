package application

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cgsnascar/portfolio/internal/domain/model"
	"github.com/cgsnascar/portfolio/internal/domain/port/driven"
)

// PanelStatus is the lifecycle state of a collection panel. A panel starts in
// PanelLoading and settles exactly once into PanelLoaded or PanelErrored.
type PanelStatus string

const (
	PanelLoading PanelStatus = "" // zero value: no response yet
	PanelLoaded  PanelStatus = "loaded"
	PanelErrored PanelStatus = "errored"
)

// Panel is the display state of one collection panel.
type Panel[T any] struct {
	Status PanelStatus
	Items  []T
}

// Page holds both panels for a single render of the portfolio page.
type Page struct {
	Projects Panel[model.Project]
	Reviews  Panel[model.Review]
}

// PanelService loads the projects and reviews panels from the portfolio API.
// Every load issues exactly one request; nothing is retried or cached.
type PanelService struct {
	api    driven.PortfolioAPI
	logger *slog.Logger
}

// NewPanelService creates a PanelService backed by the given API port.
func NewPanelService(api driven.PortfolioAPI, logger *slog.Logger) *PanelService {
	return &PanelService{
		api:    api,
		logger: logger,
	}
}

// LoadProjects fetches the projects panel.
func (s *PanelService) LoadProjects(ctx context.Context) Panel[model.Project] {
	return loadPanel(ctx, s.logger, "projects", s.api.FetchProjects)
}

// LoadReviews fetches the reviews panel.
func (s *PanelService) LoadReviews(ctx context.Context) Panel[model.Review] {
	return loadPanel(ctx, s.logger, "reviews", s.api.FetchReviews)
}

// LoadPage fetches both panels concurrently and waits for both to settle.
// A failure in one panel never affects the other.
func (s *PanelService) LoadPage(ctx context.Context) Page {
	var (
		page Page
		g    errgroup.Group
	)

	g.Go(func() error {
		page.Projects = s.LoadProjects(ctx)
		return nil
	})
	g.Go(func() error {
		page.Reviews = s.LoadReviews(ctx)
		return nil
	})
	_ = g.Wait()

	return page
}

func loadPanel[T any](
	ctx context.Context,
	logger *slog.Logger,
	panel string,
	fetch func(context.Context) (model.Listing[T], error),
) Panel[T] {
	listing, err := fetch(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Debug("panel load abandoned", "panel", panel, "error", err)
		} else {
			logger.Warn("panel load failed", "panel", panel, "error", err)
		}
		return Panel[T]{Status: PanelErrored, Items: []T{}}
	}

	if listing.IsUnexpected() {
		logger.Warn("panel response is not a list, showing empty",
			"panel", panel,
			"body", string(listing.Raw()),
		)
	}

	return Panel[T]{Status: PanelLoaded, Items: listing.Items()}
}
