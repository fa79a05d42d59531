package snapshot_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/storefront/pkg/snapshot"
)

type postgresStoreSuite struct {
	suite.Suite

	store     snapshot.Store
	db        *gorm.DB
	container *postgres.PostgresContainer
}

// entry point to run the tests in the suite
func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed suite in short mode")
	}
	suite.Run(t, new(postgresStoreSuite))
}

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// before all tests in the suite
func (suite *postgresStoreSuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.NoError(err)
	suite.container = container

	suite.db, err = gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	suite.NoError(err)

	suite.store, err = snapshot.NewStore(snapshot.DriverPostgres, snapshot.WithGormDB(suite.db))
	suite.NoError(err)
}

// after all tests in the suite
func (suite *postgresStoreSuite) TearDownSuite() {
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *postgresStoreSuite) TestSaveAndLoad() {
	t := suite.T()
	ctx := t.Context()

	key := gofakeit.UUID()
	in := map[string]any{"name": gofakeit.Name()}

	require.NoError(t, suite.store.Save(ctx, key, in))

	var out map[string]any
	require.NoError(t, suite.store.Load(ctx, key, &out))
	assert.Equal(t, in["name"], out["name"])
}

func (suite *postgresStoreSuite) TestSaveOverwrites() {
	t := suite.T()
	ctx := t.Context()

	key := gofakeit.UUID()
	require.NoError(t, suite.store.Save(ctx, key, map[string]any{"version": "first"}))
	require.NoError(t, suite.store.Save(ctx, key, map[string]any{"version": "second"}))

	var out map[string]any
	require.NoError(t, suite.store.Load(ctx, key, &out))
	assert.Equal(t, "second", out["version"])
}

func (suite *postgresStoreSuite) TestLoadMissing() {
	t := suite.T()

	var out map[string]any
	err := suite.store.Load(t.Context(), gofakeit.UUID(), &out)
	require.ErrorIs(t, err, snapshot.ErrNotFound)
}

func (suite *postgresStoreSuite) TestCorruptRecordTreatedAsAbsent() {
	t := suite.T()
	ctx := t.Context()

	key := gofakeit.UUID()
	err := suite.db.WithContext(ctx).Exec(
		`INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?::jsonb, now())`,
		key, `"scalar instead of object"`,
	).Error
	require.NoError(t, err)

	var out map[string]any
	require.ErrorIs(t, suite.store.Load(ctx, key, &out), snapshot.ErrNotFound)
}

func (suite *postgresStoreSuite) TestDelete() {
	t := suite.T()
	ctx := t.Context()

	key := gofakeit.UUID()
	require.NoError(t, suite.store.Save(ctx, key, map[string]any{"x": 1}))
	require.NoError(t, suite.store.Delete(ctx, key))

	var out map[string]any
	require.ErrorIs(t, suite.store.Load(ctx, key, &out), snapshot.ErrNotFound)
}
