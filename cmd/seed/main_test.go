package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sarb.backend/internal/config"
	"sarb.backend/internal/domain/entities"
	domainerrors "sarb.backend/internal/domain/errors"
	"sarb.backend/internal/infrastructure/datasources"
	"sarb.backend/internal/infrastructure/repositories"
)

func testDB(t *testing.T) (*gorm.DB, config.DatabaseConfig) {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:seed_%d?mode=memory&cache=shared", time.Now().UnixNano()),
	}
	db, err := datasources.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = datasources.Close(db) })
	require.NoError(t, datasources.Migrate(context.Background(), db))
	return db, cfg
}

func newSeeder(db *gorm.DB) *seeder {
	return &seeder{
		uow:      repositories.NewUnitOfWork(db),
		users:    repositories.NewUserRepository(db),
		team:     repositories.NewTeamMemberRepository(db),
		services: repositories.NewServiceRepository(db),
		studies:  repositories.NewCaseStudyRepository(db),
	}
}

func bundledFixtures(t *testing.T) *Fixtures {
	t.Helper()
	fh, err := os.Open(filepath.Join("..", "..", "fixtures", "content.yaml"))
	require.NoError(t, err)
	defer fh.Close()
	f, err := LoadFixtures(fh)
	require.NoError(t, err)
	return f
}

func TestLoadFixtures_Bundled(t *testing.T) {
	f := bundledFixtures(t)
	assert.NotEmpty(t, f.Team)
	assert.NotEmpty(t, f.Services)
	assert.NotEmpty(t, f.CaseStudies)
	for _, s := range f.Services {
		_, err := entities.ParseIcon(s.Icon)
		assert.NoError(t, err, s.Name)
	}
}

func TestLoadFixtures_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadFixtures(strings.NewReader("team:\n  - name: Ana\n    role: CTO\n"))
	assert.Error(t, err)

	f, err := LoadFixtures(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Team)
}

func TestSeeder_ResetAndPopulate(t *testing.T) {
	db, _ := testDB(t)
	s := newSeeder(db)
	ctx := context.Background()
	f := bundledFixtures(t)

	sum, err := s.Run(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, len(f.Services), sum.Services)

	// a second run replaces rather than duplicates
	_, err = s.Run(ctx, f)
	require.NoError(t, err)

	services, err := s.services.List(ctx)
	require.NoError(t, err)
	require.Len(t, services, len(f.Services))
	assert.Equal(t, "ai-strategy", services[0].Slug)
	assert.Equal(t, entities.IconInsights, services[0].Icon)

	studies, err := s.studies.List(ctx)
	require.NoError(t, err)
	require.Len(t, studies, len(f.CaseStudies))
	assert.Equal(t, 1, studies[0].Order)
	assert.Equal(t, "crop-disease-detection", studies[0].Slug)
	assert.Contains(t, studies[0].Technologies, "ONNX Runtime")

	team, err := s.team.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, team, len(f.Team))
}

func TestSeeder_FailureRollsBack(t *testing.T) {
	db, _ := testDB(t)
	s := newSeeder(db)
	ctx := context.Background()

	_, err := s.Run(ctx, &Fixtures{Services: []ServiceFixture{{Name: "Keep", Description: "d", Icon: "code"}}})
	require.NoError(t, err)

	_, err = s.Run(ctx, &Fixtures{
		Team:     []TeamFixture{{Name: "Ana", Position: "CEO", Bio: "b"}},
		Services: []ServiceFixture{{Name: "Broken", Description: "d", Icon: "unicorn"}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	services, err := s.services.List(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Keep", services[0].Name)
	team, err := s.team.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, team)
}

func TestSeeder_UpsertsUsers(t *testing.T) {
	db, _ := testDB(t)
	s := newSeeder(db)
	ctx := context.Background()

	users := []UserFixture{{Username: "admin", Email: "a@example.com", PasswordHash: "hash-1", IsStaff: true}}
	_, err := s.Run(ctx, &Fixtures{Users: users})
	require.NoError(t, err)

	users[0].PasswordHash = "hash-2"
	sum, err := s.Run(ctx, &Fixtures{Users: users})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Users)

	u, err := s.users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash-2", u.PasswordHash)
	assert.True(t, u.IsStaff)

	_, err = s.Run(ctx, &Fixtures{Users: []UserFixture{{Username: "nohash"}}})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestRun_SeedsConfiguredDatabase(t *testing.T) {
	_, dbCfg := testDB(t)
	origEnv, origCfg := loadEnv, loadCfg
	t.Cleanup(func() { loadEnv, loadCfg = origEnv, origCfg })
	loadEnv = func(...string) error { return nil }
	loadCfg = func() *config.Config {
		return &config.Config{Server: config.ServerConfig{Env: "test"}, Database: dbCfg}
	}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-file", filepath.Join("..", "..", "fixtures", "content.yaml")}, &out))
	assert.Contains(t, out.String(), "Seeded 3 team members, 5 services, 3 case studies, 0 users")

	assert.Error(t, run(context.Background(), []string{"-file", "missing.yaml"}, &out))
}
