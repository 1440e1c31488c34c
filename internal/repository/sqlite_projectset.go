package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/db"
	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// SQLiteProjectSetRepo implements ProjectSetRepo against SQLite. SaveAll
// replaces the whole set inside one transaction; child rows follow their
// project via ON DELETE CASCADE.
type SQLiteProjectSetRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// NewSQLiteProjectSetRepo creates a repo backed by the given database.
func NewSQLiteProjectSetRepo(database *sql.DB, uow db.UnitOfWork) *SQLiteProjectSetRepo {
	return &SQLiteProjectSetRepo{db: database, uow: uow}
}

func (r *SQLiteProjectSetRepo) LoadAll(ctx context.Context) ([]*domain.Project, error) {
	projects, err := r.loadProjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}

	byID := make(map[string]*domain.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	if err := r.loadSubDeadlines(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.loadTriggers(ctx, byID); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *SQLiteProjectSetRepo) SaveAll(ctx context.Context, projects []*domain.Project) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		// Cascades clear sub_deadlines and triggers too.
		if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
			return fmt.Errorf("clearing projects: %w", err)
		}

		for _, p := range projects {
			if err := insertProject(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertProject(ctx context.Context, tx db.DBTX, p *domain.Project) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO projects (id, title, final_deadline, template_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.Title,
		p.FinalDeadline.Format(dateLayout),
		nullableString(p.TemplateID),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project %q: %w", p.ID, err)
	}

	for i, sub := range p.SubDeadlines {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sub_deadlines (id, project_id, title, date, unresolved, is_completed, blueprint_id, sort_index)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			sub.ID,
			p.ID,
			sub.Title,
			sub.Date.Format(dateLayout),
			boolToInt(sub.Unresolved),
			boolToInt(sub.IsCompleted),
			nullableString(sub.BlueprintID),
			i,
		)
		if err != nil {
			return fmt.Errorf("inserting sub-deadline %q: %w", sub.ID, err)
		}
	}

	for _, tr := range p.Triggers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO triggers (id, project_id, name, is_active, activation_date, blueprint_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			tr.ID,
			p.ID,
			tr.Name,
			boolToInt(tr.IsActive),
			nullableTimeToString(tr.ActivationDate, dateLayout),
			nullableString(tr.BlueprintID),
		)
		if err != nil {
			return fmt.Errorf("inserting trigger %q: %w", tr.ID, err)
		}
	}
	return nil
}

func (r *SQLiteProjectSetRepo) loadProjects(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, final_deadline, template_id, created_at, updated_at
		 FROM projects ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		var finalStr, createdStr, updatedStr string
		var templateID sql.NullString

		if err := rows.Scan(&p.ID, &p.Title, &finalStr, &templateID, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}

		if p.FinalDeadline, err = time.Parse(dateLayout, finalStr); err != nil {
			return nil, fmt.Errorf("parsing final_deadline: %w", err)
		}
		if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		p.TemplateID = templateID.String

		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectSetRepo) loadSubDeadlines(ctx context.Context, byID map[string]*domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, title, date, unresolved, is_completed, blueprint_id
		 FROM sub_deadlines ORDER BY project_id, sort_index`)
	if err != nil {
		return fmt.Errorf("loading sub-deadlines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sub domain.SubDeadline
		var projectID, dateStr string
		var unresolved, completed int
		var blueprintID sql.NullString

		if err := rows.Scan(&sub.ID, &projectID, &sub.Title, &dateStr, &unresolved, &completed, &blueprintID); err != nil {
			return fmt.Errorf("scanning sub-deadline row: %w", err)
		}
		if sub.Date, err = time.Parse(dateLayout, dateStr); err != nil {
			return fmt.Errorf("parsing sub-deadline date: %w", err)
		}
		sub.Unresolved = intToBool(unresolved)
		sub.IsCompleted = intToBool(completed)
		sub.BlueprintID = blueprintID.String

		if p, ok := byID[projectID]; ok {
			p.SubDeadlines = append(p.SubDeadlines, sub)
		}
	}
	return rows.Err()
}

func (r *SQLiteProjectSetRepo) loadTriggers(ctx context.Context, byID map[string]*domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, name, is_active, activation_date, blueprint_id
		 FROM triggers ORDER BY project_id, name`)
	if err != nil {
		return fmt.Errorf("loading triggers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tr domain.Trigger
		var projectID string
		var active int
		var activationStr, blueprintID sql.NullString

		if err := rows.Scan(&tr.ID, &projectID, &tr.Name, &active, &activationStr, &blueprintID); err != nil {
			return fmt.Errorf("scanning trigger row: %w", err)
		}
		tr.IsActive = intToBool(active)
		tr.ActivationDate = parseNullableTime(activationStr, dateLayout)
		tr.BlueprintID = blueprintID.String

		if p, ok := byID[projectID]; ok {
			p.Triggers = append(p.Triggers, tr)
		}
	}
	return rows.Err()
}
