// Package postgresql persists the optional pipeline-run log. The pipeline
// itself is choreographed and keeps no state; this log only records completed
// bundles for whoever inspects runs after the fact.
package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"video-pipeline/internal/assemble"
)

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

type RunRepository struct {
	pool *pgxpool.Pool
}

func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// RecordRun inserts one completed assembly into the run log.
func (r *RunRepository) RecordRun(ctx context.Context, run assemble.Run) error {
	const q = `
INSERT INTO pipeline_runs (id, job_id, video_name, video_type, duration, output_folder, file_count, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := r.pool.Exec(ctx, q,
		uuid.New(),
		run.JobID,
		run.VideoName,
		run.VideoType,
		run.Duration,
		run.OutputFolder,
		run.FileCount,
		run.Status,
	)
	return err
}
