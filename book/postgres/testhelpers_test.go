//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
Test Helpers para PostgreSQL com Testcontainers

- Sobe um container Docker do PostgreSQL
- Cria o esquema livros
- Retorna connection string
- Cleanup automático após os testes

Referências:
- https://golang.testcontainers.org/modules/postgres/
- https://eltonminetto.dev/post/2024-02-15-using-test-helpers/
*/

const (
	defaultDatabase = "testdb"
	defaultUser     = "testuser"
	defaultPassword = "testpass"
)

// PostgresContainer encapsula o container e a conexão
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *sql.DB
	ConnStr   string
}

// SetupPostgresContainer cria e inicia um container PostgreSQL real
func SetupPostgresContainer(t *testing.T, ctx context.Context) (*PostgresContainer, func()) {
	t.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(defaultDatabase),
		postgres.WithUsername(defaultUser),
		postgres.WithPassword(defaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)

	err = db.PingContext(ctx)
	require.NoError(t, err)

	container := &PostgresContainer{
		Container: pgContainer,
		DB:        db,
		ConnStr:   connStr,
	}

	cleanup := func() {
		if db != nil {
			_ = db.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return container, cleanup
}

// CreateTestSchema cria a tabela livros no PostgreSQL
func CreateTestSchema(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()

	schema := `
		CREATE TABLE IF NOT EXISTS livros (
			id SERIAL PRIMARY KEY,
			titulo TEXT NOT NULL,
			autor TEXT,
			total_paginas INTEGER NOT NULL,
			pagina_atual INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'Pendente',
			data_conclusao DATE
		)
	`

	_, err := db.ExecContext(ctx, schema)
	require.NoError(t, err)
}

// PopulateSampleData insere dados de exemplo para testes
func PopulateSampleData(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()

	testBooks := []struct {
		titulo       string
		autor        string
		totalPaginas int
		paginaAtual  int
		status       string
	}{
		{"Neuromancer", "William Gibson", 271, 271, "Concluído"},
		{"Duna", "Frank Herbert", 412, 120, "Lendo"},
		{"1984", "George Orwell", 328, 0, "Pendente"},
	}

	for _, b := range testBooks {
		query := `
			INSERT INTO livros (titulo, autor, total_paginas, pagina_atual, status, data_conclusao)
			VALUES ($1, $2, $3, $4, $5, CASE WHEN $5 = 'Concluído' THEN CURRENT_DATE ELSE NULL END)
		`
		_, err := db.ExecContext(ctx, query, b.titulo, b.autor, b.totalPaginas, b.paginaAtual, b.status)
		require.NoError(t, err)
	}
}

// AssertBookCount verifica quantos livros estão no banco
func AssertBookCount(t *testing.T, ctx context.Context, db *sql.DB, expected int) {
	t.Helper()

	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM livros").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}

// CreateTestRepository cria um repositório para testes
func CreateTestRepository(t *testing.T, connStr string) *Repository {
	t.Helper()

	repo, err := NewRepository(connStr)
	require.NoError(t, err)

	return repo
}
