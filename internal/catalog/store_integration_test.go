package catalog

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "STOREFRONT_SKIP_INTEGRATION_TESTS"

// ProductStoreSuite is a test suite for the ProductStore implementation.
type ProductStoreSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	store       ProductStore
	logger      *slog.Logger
	ctx         context.Context
}

// SetupSuite starts a PostgreSQL container, connects and applies migrations.
func (s *ProductStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	wd, _ := os.Getwd()
	migrationsPath := filepath.Join(wd, "..", "..", "migrations")
	m, err := migrate.New("file://"+migrationsPath, connStr)
	require.NoError(s.T(), err, "Failed to create migrate instance")
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		_, _ = m.Close()
		require.NoError(s.T(), err, "Failed to apply migrations")
	}
	s.logger.Info("Migrations applied for E2E tests")

	s.store = NewPgStore(s.dbPool)
}

// TearDownSuite cleans up resources after all tests in the suite have run.
func (s *ProductStoreSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}

// SetupTest prepares the database for each test by truncating the products table.
func (s *ProductStoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE products RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate products table")
}

// TestProductStoreIntegration runs the ProductStore integration tests.
func TestProductStoreIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(ProductStoreSuite))
}

// createTestProduct is a helper to insert a product for testing purposes.
func (s *ProductStoreSuite) createTestProduct(name, brand string, price int64) *Product {
	s.T().Helper()
	product, err := s.store.Create(s.ctx, Product{
		Name:          name,
		Brand:         brand,
		Price:         price,
		StockQuantity: 10,
		Category:      CategoryHomme,
		Rating:        4.2,
		ReviewCount:   57,
	})
	require.NoError(s.T(), err, "createTestProduct helper failed to create product")
	return product
}

func (s *ProductStoreSuite) TestCreateAndFindByID() {
	created := s.createTestProduct("Sauvage", "Dior", 45000)

	require.NotZero(s.T(), created.ID, "Created product ID should not be zero")
	require.Equal(s.T(), "Sauvage", created.Name)
	require.Equal(s.T(), "Dior", created.Brand)
	require.Equal(s.T(), int64(45000), created.Price)
	require.NotZero(s.T(), created.CreatedAt, "CreatedAt should be set")

	fetched, err := s.store.FindByID(s.ctx, created.ID)
	require.NoError(s.T(), err, "FindByID should not return an error")
	require.Equal(s.T(), created.ID, fetched.ID)
	require.Equal(s.T(), created.Name, fetched.Name)
	require.Equal(s.T(), created.Price, fetched.Price)
	require.WithinDuration(s.T(), created.CreatedAt, fetched.CreatedAt, time.Second)
}

func (s *ProductStoreSuite) TestFindByID_NotFound() {
	_, err := s.store.FindByID(s.ctx, uuid.New())
	require.ErrorIs(s.T(), err, ErrProductNotFound, "Expected ErrProductNotFound for non-existent product")
}

func (s *ProductStoreSuite) TestListAll_NewestFirst() {
	s.createTestProduct("Produit A", "Dior", 30000)
	s.createTestProduct("Produit B", "Chanel", 58000)

	products, err := s.store.ListAll(s.ctx)

	require.NoError(s.T(), err)
	require.Len(s.T(), products, 2, "Should retrieve 2 products")
	assert.Equal(s.T(), "Produit B", products[0].Name)
	assert.Equal(s.T(), "Produit A", products[1].Name)
}

func (s *ProductStoreSuite) TestNullBrandRoundTrip() {
	// empty brand is stored as NULL and scanned back as the empty string
	created := s.createTestProduct("Éclat Mystère", "", 30000)

	fetched, err := s.store.FindByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), fetched.Brand)
	assert.Equal(s.T(), FallbackBrand, fetched.BrandLabel())
}

func (s *ProductStoreSuite) TestUpdateProduct() {
	created := s.createTestProduct("Sauvage", "Dior", 45000)

	toUpdate := *created
	toUpdate.Name = "Sauvage Elixir"
	toUpdate.Price = 62000
	toUpdate.StockQuantity = 5
	updated, err := s.store.Update(s.ctx, toUpdate)
	require.NoError(s.T(), err, "Update should not return an error")

	require.Equal(s.T(), created.ID, updated.ID)
	require.Equal(s.T(), "Sauvage Elixir", updated.Name)
	require.Equal(s.T(), int64(62000), updated.Price)
	require.Equal(s.T(), int32(5), updated.StockQuantity)
	require.False(s.T(), updated.UpdatedAt.Before(created.UpdatedAt), "UpdatedAt should move forward")
}

func (s *ProductStoreSuite) TestUpdateProduct_NotFound() {
	_, err := s.store.Update(s.ctx, Product{
		ID:       uuid.New(),
		Name:     "Inexistant",
		Price:    99999,
		Category: CategoryFemme,
	})
	require.ErrorIs(s.T(), err, ErrProductNotFound, "Expected ErrProductNotFound for non-existent product")
}

func (s *ProductStoreSuite) TestDeleteByID() {
	created := s.createTestProduct("Ambre Nuit", "Dior", 30000)

	err := s.store.DeleteByID(s.ctx, created.ID)
	require.NoError(s.T(), err, "DeleteByID should not return an error")

	_, err = s.store.FindByID(s.ctx, created.ID)
	require.ErrorIs(s.T(), err, ErrProductNotFound, "Expected ErrProductNotFound for deleted product")
}

func (s *ProductStoreSuite) TestDeleteByID_NotFound() {
	err := s.store.DeleteByID(s.ctx, uuid.New())
	require.ErrorIs(s.T(), err, ErrProductNotFound, "Expected ErrProductNotFound for non-existent product")
}
