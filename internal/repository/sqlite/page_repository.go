package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/lirajourney/internal/logger"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/repository"
)

const pageInsert = `
INSERT INTO build_pages (
    run_id, character_id, status, error, phase_count, quiz_count,
    exercise_count, output_path, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const pageSelect = `
SELECT id, run_id, character_id, status, error, phase_count, quiz_count,
       exercise_count, output_path, created_at
FROM build_pages
`

type pageRepository struct {
	db *sql.DB
}

// NewPageRepository creates a new PageRepository implementation
func NewPageRepository(db *sql.DB) repository.PageRepository {
	return &pageRepository{db: db}
}

func pageArgs(p models.BuildPage) []any {
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return []any{p.RunID, p.CharacterID, p.Status, p.Error, p.PhaseCount, p.QuizCount,
		p.ExerciseCount, p.OutputPath, created.UTC()}
}

func scanPage(row rowScanner) (models.BuildPage, error) {
	var p models.BuildPage
	err := row.Scan(&p.ID, &p.RunID, &p.CharacterID, &p.Status, &p.Error, &p.PhaseCount,
		&p.QuizCount, &p.ExerciseCount, &p.OutputPath, &p.CreatedAt)
	return p, err
}

func (r *pageRepository) Insert(ctx context.Context, page models.BuildPage) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("page_repo")
	log.Debug("inserting page: run=%s, character=%s, status=%s", page.RunID, page.CharacterID, page.Status)

	res, err := r.db.ExecContext(ctx, pageInsert, pageArgs(page)...)
	if err != nil {
		log.Error("failed to insert page: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get page id: %v", err)
		return 0, err
	}
	log.Debug("page inserted: id=%d", id)
	return id, nil
}

func (r *pageRepository) InsertBatch(ctx context.Context, pages []models.BuildPage) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("page_repo")
	log.Debug("batch inserting %d pages", len(pages))

	if len(pages) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(pages))
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, pageInsert)
		if err != nil {
			log.Error("failed to prepare batch insert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, p := range pages {
			res, err := stmt.ExecContext(ctx, pageArgs(p)...)
			if err != nil {
				log.Error("failed to insert page character=%s: %v", p.CharacterID, err)
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("batch insert completed, %d pages inserted", len(ids))
	return ids, nil
}

func (r *pageRepository) PagesForRun(ctx context.Context, runID string) ([]models.BuildPage, error) {
	log := logger.FromContext(ctx).WithPrefix("page_repo")
	log.Debug("listing pages for run: %s", runID)

	rows, err := r.db.QueryContext(ctx, pageSelect+`WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		log.Error("failed to list pages: %v", err)
		return nil, err
	}
	defer rows.Close()

	var pages []models.BuildPage
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			log.Error("failed to scan page row: %v", err)
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func (r *pageRepository) LatestForCharacter(ctx context.Context, characterID string) (*models.BuildPage, error) {
	log := logger.FromContext(ctx).WithPrefix("page_repo")
	log.Debug("getting latest page for character: %s", characterID)

	p, err := scanPage(r.db.QueryRowContext(ctx, pageSelect+`WHERE character_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, characterID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no pages for character: %s", characterID)
		} else {
			log.Error("failed to get latest page: %v", err)
		}
		return nil, err
	}
	return &p, nil
}
