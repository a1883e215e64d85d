//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/john-holland/heycern-m87hey/internal/observatory"
	"github.com/john-holland/heycern-m87hey/internal/visualization/models"
	"github.com/john-holland/heycern-m87hey/internal/visualization/store"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
	"github.com/john-holland/heycern-m87hey/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "visualizations")
	s.Require().NoError(err)
}

func newArtifact(period domain.Period, createdAt time.Time) models.Artifact {
	return models.Artifact{
		ID:            domain.NewVisualizationID(),
		Period:        period,
		Description:   "Late Cretaceous Earth with diverse dinosaurs and flowering plants",
		Prompt:        "high quality astronomical visualization",
		QualityScore:  0.855,
		DataSource:    observatory.SourceArchive,
		DistanceLY:    5.35e7,
		LookbackYears: 6.6e7,
		Magnification: 1.5625,
		Width:         512,
		Height:        512,
		ImagePNG:      []byte{0x89, 'P', 'N', 'G'},
		CreatedAt:     createdAt,
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	artifact := newArtifact(domain.PeriodCretaceous, time.Now().UTC())

	s.Require().NoError(s.store.Save(ctx, artifact))

	got, err := s.store.Get(ctx, artifact.ID)
	s.Require().NoError(err)
	s.Equal(artifact.ID, got.ID)
	s.Equal(artifact.Period, got.Period)
	s.Equal(artifact.Description, got.Description)
	s.Equal(artifact.DataSource, got.DataSource)
	s.InDelta(artifact.QualityScore, got.QualityScore, 1e-9)
	s.InDelta(artifact.Magnification, got.Magnification, 1e-9)
	s.Equal(artifact.ImagePNG, got.ImagePNG)
	s.WithinDuration(artifact.CreatedAt, got.CreatedAt, time.Second)
}

func (s *PostgresStoreSuite) TestListNewestFirstWithoutImages() {
	ctx := context.Background()
	now := time.Now().UTC()

	oldest := newArtifact(domain.PeriodEarlyEarth, now.Add(-2*time.Hour))
	middle := newArtifact(domain.PeriodTriassic, now.Add(-time.Hour))
	newest := newArtifact(domain.PeriodCretaceous, now)
	for _, a := range []models.Artifact{oldest, middle, newest} {
		s.Require().NoError(s.store.Save(ctx, a))
	}

	got, err := s.store.List(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(newest.ID, got[0].ID)
	s.Equal(middle.ID, got[1].ID)
	for _, a := range got {
		s.Nil(a.ImagePNG)
	}
}

func (s *PostgresStoreSuite) TestMissReturnsNotFound() {
	_, err := s.store.Get(context.Background(), domain.NewVisualizationID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
