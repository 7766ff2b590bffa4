//go:build integration

package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"

	"assustadus/internal/db"
	"assustadus/internal/db/repository"
	"assustadus/internal/domain/common"
	dom "assustadus/internal/domain/user"
	"assustadus/internal/logging"
)

const usersDDL = `
CREATE TABLE IF NOT EXISTS users (
	id         uuid PRIMARY KEY,
	email      text NOT NULL,
	first_name varchar(50) NOT NULL,
	last_name  varchar(50) NOT NULL,
	phone      varchar(20),
	created_at timestamptz NOT NULL,
	updated_at timestamptz NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);`

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "assustadus_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/assustadus_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func setupRepo(t *testing.T) *repository.UserRepository {
	t.Helper()
	ctx := context.Background()

	var (
		sqlDB *sql.DB
		err   error
	)
	// the port is open slightly before postgres accepts connections
	require.Eventually(t, func() bool {
		sqlDB, err = sql.Open("pgx", dsn)
		if err != nil {
			return false
		}
		if err = sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return false
		}
		return true
	}, 30*time.Second, 500*time.Millisecond)

	_, err = sqlDB.ExecContext(ctx, usersDDL)
	require.NoError(t, err)
	_, err = sqlDB.ExecContext(ctx, `TRUNCATE users`)
	require.NoError(t, err)

	client := db.NewClientFromDB(sqlDB, logging.NewNop())
	t.Cleanup(func() { _ = client.Close() })

	return repository.NewUserRepository(client, logging.NewNop())
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	phone := "1234567890"
	u := &dom.User{Email: "test@example.com", FirstName: "John", LastName: "Doe", Phone: &phone}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEqual(t, uuid.Nil, u.ID)
	require.Equal(t, u.CreatedAt, u.UpdatedAt)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, *u, *got)

	time.Sleep(5 * time.Millisecond)
	name := "Navas"
	updated, err := repo.Update(ctx, u.ID, dom.Patch{FirstName: &name})
	require.NoError(t, err)
	require.Equal(t, "Navas", updated.FirstName)
	require.Equal(t, u.LastName, updated.LastName)
	require.Equal(t, u.Email, updated.Email)
	require.Equal(t, u.CreatedAt, updated.CreatedAt)
	require.True(t, updated.UpdatedAt.After(u.UpdatedAt))

	again, err := repo.Update(ctx, u.ID, dom.Patch{ClearPhone: true})
	require.NoError(t, err)
	require.Nil(t, again.Phone)
	require.True(t, again.UpdatedAt.After(updated.UpdatedAt))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, u.ID))

	_, err = repo.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, dom.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, u.ID), dom.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	require.NoError(t, repo.Create(ctx, &dom.User{Email: "dup@example.com", FirstName: "A", LastName: "B"}))

	err := repo.Create(ctx, &dom.User{Email: "dup@example.com", FirstName: "C", LastName: "D"})
	require.True(t, common.IsConflict(err))
}
