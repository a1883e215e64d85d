package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/john-holland/heycern-m87hey/internal/observatory"
	"github.com/john-holland/heycern-m87hey/internal/visualization/models"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

// PostgresStore persists artifacts in the visualizations table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed artifact store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, artifact models.Artifact) error {
	if artifact.ID.IsNil() {
		return fmt.Errorf("artifact id is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visualizations (
			id, period, description, prompt, quality_score, data_source,
			distance_ly, lookback_years, magnification, width, height,
			image_png, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		uuid.UUID(artifact.ID), string(artifact.Period), artifact.Description,
		artifact.Prompt, artifact.QualityScore, string(artifact.DataSource),
		artifact.DistanceLY, artifact.LookbackYears, artifact.Magnification,
		artifact.Width, artifact.Height, artifact.ImagePNG, artifact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save visualization: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id domain.VisualizationID) (models.Artifact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, period, description, prompt, quality_score, data_source,
			distance_ly, lookback_years, magnification, width, height,
			image_png, created_at
		FROM visualizations
		WHERE id = $1`,
		uuid.UUID(id),
	)

	artifact, err := scanArtifact(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Artifact{}, fmt.Errorf("visualization %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return models.Artifact{}, fmt.Errorf("load visualization: %w", err)
	}
	return artifact, nil
}

// List returns metadata-only artifacts, newest first.
func (s *PostgresStore) List(ctx context.Context, limit int) ([]models.Artifact, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, period, description, prompt, quality_score, data_source,
			distance_ly, lookback_years, magnification, width, height,
			created_at
		FROM visualizations
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list visualizations: %w", err)
	}
	defer rows.Close()

	var out []models.Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan visualization: %w", err)
		}
		out = append(out, artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list visualizations: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner, withImage bool) (models.Artifact, error) {
	var (
		artifact models.Artifact
		id       uuid.UUID
		period   string
		source   string
	)
	dest := []any{
		&id, &period, &artifact.Description, &artifact.Prompt,
		&artifact.QualityScore, &source, &artifact.DistanceLY,
		&artifact.LookbackYears, &artifact.Magnification,
		&artifact.Width, &artifact.Height,
	}
	if withImage {
		dest = append(dest, &artifact.ImagePNG)
	}
	dest = append(dest, &artifact.CreatedAt)

	if err := row.Scan(dest...); err != nil {
		return models.Artifact{}, err
	}
	artifact.ID = domain.VisualizationID(id)
	artifact.Period = domain.Period(period)
	artifact.DataSource = observatory.Source(source)
	return artifact, nil
}
