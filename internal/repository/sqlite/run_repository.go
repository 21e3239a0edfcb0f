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

var runColumns = []string{
	"r.id", "r.started_at", "r.finished_at", "r.status", "r.characters_expected",
	"r.characters_found", "r.pages_generated", "r.pages_failed", "r.output_dir",
}

type rowScanner interface {
	Scan(dest ...any) error
}

type runRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository implementation
func NewRunRepository(db *sql.DB) repository.RunRepository {
	return &runRepository{db: db}
}

func scanRun(row rowScanner) (models.BuildRun, error) {
	var run models.BuildRun
	var finished sql.NullTime
	err := row.Scan(&run.ID, &run.StartedAt, &finished, &run.Status, &run.CharactersExpected,
		&run.CharactersFound, &run.PagesGenerated, &run.PagesFailed, &run.OutputDir)
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return run, err
}

func (r *runRepository) Create(ctx context.Context, run models.BuildRun) error {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("creating run: id=%s, expected=%d", run.ID, run.CharactersExpected)

	if run.Status == "" {
		run.Status = models.RunStatusRunning
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO build_runs (
    id, started_at, finished_at, status, characters_expected, characters_found,
    pages_generated, pages_failed, output_dir
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, run.ID, run.StartedAt.UTC(), nullTime(run.FinishedAt), run.Status, run.CharactersExpected,
		run.CharactersFound, run.PagesGenerated, run.PagesFailed, run.OutputDir)
	if err != nil {
		log.Error("failed to create run: %v", err)
	}
	return err
}

func (r *runRepository) Get(ctx context.Context, id string) (*models.BuildRun, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("getting run: id=%s", id)

	query, args, err := sqlBuilder.Select(runColumns...).From("build_runs r").Where("r.id = ?", id).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	run, err := scanRun(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("run not found: id=%s", id)
		} else {
			log.Error("failed to get run: %v", err)
		}
		return nil, err
	}
	return &run, nil
}

// Finish recounts the run's pages and stamps its final status.
func (r *runRepository) Finish(ctx context.Context, id string, status string, finishedAt time.Time) (*models.BuildRun, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("finishing run: id=%s, status=%s", id, status)

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var generated, failed, found int
		err := tx.QueryRowContext(ctx, `
SELECT
    COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
    COUNT(DISTINCT character_id)
FROM build_pages
WHERE run_id = ?
`, models.PageStatusGenerated, models.PageStatusFailed, id).Scan(&generated, &failed, &found)
		if err != nil {
			log.Error("failed to count pages: %v", err)
			return err
		}

		res, err := tx.ExecContext(ctx, `
UPDATE build_runs
SET status = ?, finished_at = ?, pages_generated = ?, pages_failed = ?, characters_found = ?
WHERE id = ?
`, status, finishedAt.UTC(), generated, failed, found, id)
		if err != nil {
			log.Error("failed to update run: %v", err)
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *runRepository) List(ctx context.Context, filter models.RunFilter) ([]models.BuildRun, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("listing runs with filter: character=%s, status=%s, limit=%d, offset=%d",
		filter.CharacterID, filter.Status, filter.Limit, filter.Offset)

	query := runFilter(sqlBuilder.Select(runColumns...).From("build_runs r"), filter).
		OrderBy("r.started_at DESC", "r.id")

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlText, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		log.Error("failed to list runs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var runs []models.BuildRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			log.Error("failed to scan run row: %v", err)
			return nil, err
		}
		runs = append(runs, run)
	}
	log.Debug("found %d runs", len(runs))
	return runs, rows.Err()
}

func (r *runRepository) Count(ctx context.Context, filter models.RunFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")

	sqlText, args, err := runFilter(sqlBuilder.Select("COUNT(*)").From("build_runs r"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlText, args...).Scan(&count); err != nil {
		log.Error("failed to count runs: %v", err)
		return 0, err
	}
	return count, nil
}

// DeleteBefore removes runs started before the cutoff. Their pages go with
// them through the foreign key cascade.
func (r *runRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("deleting runs started before %s", before.Format(time.RFC3339))

	res, err := r.db.ExecContext(ctx, `DELETE FROM build_runs WHERE started_at < ?`, before.UTC())
	if err != nil {
		log.Error("failed to delete runs: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Info("deleted %d runs", n)
	return n, nil
}
