package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marcelsud/plano-leitura/book"

	_ "github.com/lib/pq" // PostgreSQL driver
)

/*
PostgreSQL Repository

- Pool de conexões configurado na construção (recurso de processo: abre no
  boot, fecha no shutdown)
- Placeholders ($1, $2) sempre; valores do cliente nunca entram no texto do SQL
- UPDATE parcial montado a partir de uma allow-list fixa de colunas
- RETURNING para devolver a linha afetada em uma só viagem
*/

type Repository struct {
	DB *sql.DB
}

const selectColumns = "id, titulo, autor, total_paginas, pagina_atual, status, data_conclusao"

// NewRepository cria uma nova instância do repositório PostgreSQL com pool padrão (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig cria uma nova instância do repositório PostgreSQL com configuração customizável
// maxOpenConns: máximo de conexões simultâneas (0 = ilimitado)
// maxIdleConns: máximo de conexões inativas mantidas no pool
// maxLifeMinutes: duração máxima em minutos que uma conexão pode ser reutilizada
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (book.Book, error) {
	var (
		b          book.Book
		author     sql.NullString
		finishedAt sql.NullTime
	)
	err := row.Scan(
		&b.ID,
		&b.Title,
		&author,
		&b.TotalPages,
		&b.CurrentPage,
		&b.Status,
		&finishedAt,
	)
	if err != nil {
		return book.Book{}, err
	}
	b.Author = author.String
	if finishedAt.Valid {
		t := finishedAt.Time
		b.FinishedAt = &t
	}
	return b, nil
}

// Select busca um livro por ID
func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	query := "SELECT " + selectColumns + " FROM livros WHERE id = $1"

	b, err := scanBook(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

// SelectAll retorna todos os livros, do mais recente para o mais antigo
func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	query := "SELECT " + selectColumns + " FROM livros ORDER BY id DESC"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}

	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return books, nil
}

// Insert insere um novo livro e retorna o ID gerado
func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	query := `
		INSERT INTO livros (titulo, autor, total_paginas, pagina_atual, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	author := sql.NullString{String: b.Author, Valid: b.Author != ""}

	var id int64
	err := r.DB.QueryRowContext(ctx, query, b.Title, author, b.TotalPages, b.CurrentPage, b.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}

	return id, nil
}

// Update aplica uma atualização parcial: o SET é montado apenas com os
// campos presentes, sobre a allow-list {pagina_atual, status}. Mudar o
// status deriva data_conclusao dentro do mesmo statement.
func (r *Repository) Update(ctx context.Context, id int64, upd book.Update) (book.Book, error) {
	updates := make([]string, 0, 3)
	params := make([]any, 0, 3)
	paramIndex := 1

	if upd.CurrentPage != nil {
		updates = append(updates, fmt.Sprintf("pagina_atual = $%d", paramIndex))
		params = append(params, *upd.CurrentPage)
		paramIndex++
	}
	if upd.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", paramIndex))
		params = append(params, *upd.Status)
		paramIndex++
		if *upd.Status == book.Finished {
			updates = append(updates, "data_conclusao = CURRENT_DATE")
		} else {
			updates = append(updates, "data_conclusao = NULL")
		}
	}
	if len(updates) == 0 {
		return book.Book{}, book.ValidationError{Field: "body", Message: "nenhum campo válido para atualização fornecido"}
	}

	query := fmt.Sprintf(
		"UPDATE livros SET %s WHERE id = $%d RETURNING %s",
		strings.Join(updates, ", "), paramIndex, selectColumns,
	)
	params = append(params, id)

	b, err := scanBook(r.DB.QueryRowContext(ctx, query, params...))
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("updating book: %w", err)
	}
	return b, nil
}

// Delete remove um livro e retorna a linha como existia antes da remoção
func (r *Repository) Delete(ctx context.Context, id int64) (book.Book, error) {
	query := "DELETE FROM livros WHERE id = $1 RETURNING " + selectColumns

	b, err := scanBook(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("deleting book: %w", err)
	}
	return b, nil
}

// Close fecha a conexão com o banco de dados
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTable cria a tabela livros (útil para testes e para o seed)
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
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

	_, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	return nil
}

// DropTable remove a tabela livros (útil para testes)
func (r *Repository) DropTable(ctx context.Context) error {
	query := "DROP TABLE IF EXISTS livros CASCADE"

	_, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}

	return nil
}
