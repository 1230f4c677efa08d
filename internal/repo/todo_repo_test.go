package repo_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"todo-api/internal/config"
	"todo-api/internal/database"
	dom "todo-api/internal/domain"
	"todo-api/internal/repo"
)

// Integration tests against a real MySQL instance.
type MySQLRepoSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	db        *sql.DB
	repo      *repo.MySQLTodoRepo
}

func TestMySQLRepoSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MySQL integration tests in short mode")
	}
	suite.Run(t, new(MySQLRepoSuite))
}

func (s *MySQLRepoSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "password",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").
			WithStartupTimeout(2 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(s.ctx, "3306")
	require.NoError(s.T(), err)

	cfg := config.DBConfig{
		Host:           host,
		Port:           port.Int(),
		User:           "root",
		Password:       "password",
		Name:           "todo_db_test",
		ConnectTimeout: 10 * time.Second,
	}

	// Same bootstrap the process runs at startup, plus the table drop the
	// test fixtures use. Exercises the retry path when MySQL is still
	// warming up.
	require.NoError(s.T(), database.Init(s.ctx, cfg, true, zap.NewNop()))

	db, err := database.Connect(s.ctx, cfg)
	require.NoError(s.T(), err)
	s.db = db
	s.repo = repo.NewMySQLTodoRepo(db, zap.NewNop())
}

func (s *MySQLRepoSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		s.container.Terminate(s.ctx)
	}
}

func (s *MySQLRepoSuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, "DELETE FROM todos")
	require.NoError(s.T(), err)
}

func (s *MySQLRepoSuite) TestCreateReadsBackServerAssignedFields() {
	created, err := s.repo.Create(s.ctx, dom.Todo{
		Title:       "Buy groceries",
		Description: "Milk and bread",
	})
	s.Require().NoError(err)

	s.Positive(created.ID)
	s.Equal("Buy groceries", created.Title)
	s.Equal("Milk and bread", created.Description)
	s.False(created.Completed)
	s.False(created.CreatedAt.IsZero())
	s.True(created.CreatedAt.Equal(created.UpdatedAt))

	got, err := s.repo.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, got)
}

func (s *MySQLRepoSuite) TestListOrdersByCreatedAtDesc() {
	base := time.Now().UTC().Truncate(time.Second).Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		_, err := s.db.ExecContext(s.ctx,
			`INSERT INTO todos (title, description, completed, created_at, updated_at) VALUES (?, '', FALSE, ?, ?)`,
			title, base.Add(time.Duration(i)*time.Minute), base.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(err)
	}

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("third", list[0].Title)
	s.Equal("second", list[1].Title)
	s.Equal("first", list[2].Title)
}

func (s *MySQLRepoSuite) TestListEmptyTable() {
	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)
}

func (s *MySQLRepoSuite) TestGetAbsentID() {
	_, err := s.repo.GetByID(s.ctx, 99999)
	s.ErrorIs(err, sql.ErrNoRows)
}

func (s *MySQLRepoSuite) TestUpdateRefreshesUpdatedAt() {
	created, err := s.repo.Create(s.ctx, dom.Todo{Title: "before"})
	s.Require().NoError(err)

	// TIMESTAMP has second resolution; make sure the clock ticks.
	time.Sleep(1100 * time.Millisecond)

	patch := created
	patch.Title = "after"
	patch.Completed = true

	updated, err := s.repo.Update(s.ctx, created.ID, patch)
	s.Require().NoError(err)

	s.Equal("after", updated.Title)
	s.True(updated.Completed)
	s.True(updated.CreatedAt.Equal(created.CreatedAt))
	s.True(updated.UpdatedAt.After(created.UpdatedAt))
	s.Equal(created.Description, updated.Description)
}

func (s *MySQLRepoSuite) TestUpdateWithIdenticalValues() {
	created, err := s.repo.Create(s.ctx, dom.Todo{Title: "same", Description: "same"})
	s.Require().NoError(err)

	// A no-op update must not read as an absent id; the DSN sets
	// ClientFoundRows so affected counts matched rows.
	got, err := s.repo.Update(s.ctx, created.ID, created)
	s.Require().NoError(err)
	s.Equal(created.Title, got.Title)
}

func (s *MySQLRepoSuite) TestUpdateAbsentID() {
	_, err := s.repo.Update(s.ctx, 99999, dom.Todo{Title: "ghost"})
	s.ErrorIs(err, sql.ErrNoRows)
}

func (s *MySQLRepoSuite) TestDeleteThenGet() {
	created, err := s.repo.Create(s.ctx, dom.Todo{Title: "doomed"})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(s.ctx, created.ID))

	_, err = s.repo.GetByID(s.ctx, created.ID)
	s.ErrorIs(err, sql.ErrNoRows)

	// Hard delete: a second delete reports absence too.
	s.ErrorIs(s.repo.Delete(s.ctx, created.ID), sql.ErrNoRows)
}
