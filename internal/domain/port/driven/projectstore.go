package driven

import (
	"context"

	"github.com/cgsnascar/portfolio/internal/domain/model"
)

// ProjectStore defines the driven port for project persistence.
// ListAll returns projects in id order with ActionLabel already derived.
type ProjectStore interface {
	ListAll(ctx context.Context) ([]model.Project, error)
}
