package sqlite

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cgsnascar/portfolio/internal/domain/model"
	"github.com/cgsnascar/portfolio/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProjectStore = (*ProjectRepo)(nil)

// ProjectRepo is the SQLite implementation of the ProjectStore port interface.
type ProjectRepo struct {
	db *DB
}

// NewProjectRepo creates a new ProjectRepo backed by the given DB.
func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// ListAll returns all projects ordered by id, with the action label derived
// from each project's URL.
func (r *ProjectRepo) ListAll(ctx context.Context) ([]model.Project, error) {
	const query = `SELECT id, title, description, url FROM projects ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var (
			id int64
			p  model.Project
		)
		if err := rows.Scan(&id, &p.Title, &p.Description, &p.URL); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.ID = model.RecordID(strconv.FormatInt(id, 10))
		p.ActionLabel = model.ActionLabelFor(p.URL)
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}
