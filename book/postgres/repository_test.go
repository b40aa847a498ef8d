//go:build !integration

package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/marcelsud/plano-leitura/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
Testes Unitários para Repository PostgreSQL

Estes testes usam sqlmock para simular o banco de dados sem precisar
de um banco real ou containers. O foco aqui é o SQL gerado, em especial
o UPDATE parcial montado dinamicamente.

Executar com: go test ./book/postgres/...
(Sem -tags=integration)
*/

const allColumns = "id, titulo, autor, total_paginas, pagina_atual, status, data_conclusao"

func bookColumns() []string {
	return []string{"id", "titulo", "autor", "total_paginas", "pagina_atual", "status", "data_conclusao"}
}

func intPtr(i int) *int {
	return &i
}

func statusPtr(s book.Status) *book.Status {
	return &s
}

func TestRepository_Insert_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &Repository{DB: db}
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(1)
	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO livros (titulo, autor, total_paginas, pagina_atual, status)`,
	)).WithArgs("Duna", "Frank Herbert", 412, 0, "Pendente").WillReturnRows(rows)

	id, err := repo.Insert(ctx, book.Book{
		Title:      "Duna",
		Author:     "Frank Herbert",
		TotalPages: 412,
		Status:     book.Pending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Insert_NullAuthor_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &Repository{DB: db}
	ctx := context.Background()

	// Autor vazio vira NULL na coluna, como no esquema original
	rows := sqlmock.NewRows([]string{"id"}).AddRow(2)
	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO livros (titulo, autor, total_paginas, pagina_atual, status)`,
	)).WithArgs("1984", nil, 328, 0, "Pendente").WillReturnRows(rows)

	id, err := repo.Insert(ctx, book.Book{
		Title:      "1984",
		TotalPages: 328,
		Status:     book.Pending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Select_Unit(t *testing.T) {
	t.Run("select existing book", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		finished := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(bookColumns()).
			AddRow(1, "Neuromancer", "William Gibson", 271, 271, "Concluído", finished)

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT `+allColumns+` FROM livros WHERE id = $1`,
		)).WithArgs(1).WillReturnRows(rows)

		b, err := repo.Select(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), b.ID)
		assert.Equal(t, "Neuromancer", b.Title)
		assert.Equal(t, "William Gibson", b.Author)
		assert.Equal(t, book.Finished, b.Status)
		require.NotNil(t, b.FinishedAt)
		assert.Equal(t, finished, *b.FinishedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null author and null completion date", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		rows := sqlmock.NewRows(bookColumns()).
			AddRow(2, "1984", nil, 328, 0, "Pendente", nil)

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT `+allColumns+` FROM livros WHERE id = $1`,
		)).WithArgs(2).WillReturnRows(rows)

		b, err := repo.Select(ctx, 2)

		require.NoError(t, err)
		assert.Empty(t, b.Author)
		assert.Nil(t, b.FinishedAt)
		assert.Equal(t, book.Pending, b.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("select non-existent book returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		rows := sqlmock.NewRows(bookColumns())

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT `+allColumns+` FROM livros WHERE id = $1`,
		)).WithArgs(999).WillReturnRows(rows)

		_, err = repo.Select(ctx, 999)

		require.Error(t, err)
		assert.Equal(t, book.ErrNotFound, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_SelectAll_Unit(t *testing.T) {
	t.Run("newest first", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		rows := sqlmock.NewRows(bookColumns()).
			AddRow(3, "1984", "George Orwell", 328, 0, "Pendente", nil).
			AddRow(2, "Neuromancer", "William Gibson", 271, 100, "Lendo", nil).
			AddRow(1, "Duna", "Frank Herbert", 412, 412, "Concluído", time.Now())

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT `+allColumns+` FROM livros ORDER BY id DESC`,
		)).WillReturnRows(rows)

		books, err := repo.SelectAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, 3, len(books))
		assert.Equal(t, int64(3), books[0].ID)
		assert.Equal(t, int64(1), books[2].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty database yields an empty list, not an error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		rows := sqlmock.NewRows(bookColumns())

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT `+allColumns+` FROM livros ORDER BY id DESC`,
		)).WillReturnRows(rows)

		books, err := repo.SelectAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Update_Unit(t *testing.T) {
	t.Run("page only touches pagina_atual alone", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		rows := sqlmock.NewRows(bookColumns()).
			AddRow(1, "Duna", "Frank Herbert", 412, 200, "Lendo", nil)

		mock.ExpectQuery(regexp.QuoteMeta(
			`UPDATE livros SET pagina_atual = $1 WHERE id = $2 RETURNING `+allColumns,
		)).WithArgs(200, int64(1)).WillReturnRows(rows)

		b, err := repo.Update(ctx, 1, book.Update{CurrentPage: intPtr(200)})

		require.NoError(t, err)
		assert.Equal(t, 200, b.CurrentPage)
		assert.Equal(t, book.Reading, b.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("finishing derives the completion date in the same statement", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		today := time.Now()
		rows := sqlmock.NewRows(bookColumns()).
			AddRow(1, "Duna", "Frank Herbert", 412, 200, "Concluído", today)

		mock.ExpectQuery(regexp.QuoteMeta(
			`UPDATE livros SET status = $1, data_conclusao = CURRENT_DATE WHERE id = $2 RETURNING `+allColumns,
		)).WithArgs("Concluído", int64(1)).WillReturnRows(rows)

		b, err := repo.Update(ctx, 1, book.Update{Status: statusPtr(book.Finished)})

		require.NoError(t, err)
		assert.Equal(t, book.Finished, b.Status)
		require.NotNil(t, b.FinishedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("leaving Concluído clears the completion date", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		rows := sqlmock.NewRows(bookColumns()).
			AddRow(1, "Duna", "Frank Herbert", 412, 412, "Lendo", nil)

		mock.ExpectQuery(regexp.QuoteMeta(
			`UPDATE livros SET status = $1, data_conclusao = NULL WHERE id = $2 RETURNING `+allColumns,
		)).WithArgs("Lendo", int64(1)).WillReturnRows(rows)

		b, err := repo.Update(ctx, 1, book.Update{Status: statusPtr(book.Reading)})

		require.NoError(t, err)
		assert.Equal(t, book.Reading, b.Status)
		assert.Nil(t, b.FinishedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page and status together build a single statement", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		rows := sqlmock.NewRows(bookColumns()).
			AddRow(1, "Duna", "Frank Herbert", 412, 412, "Concluído", time.Now())

		mock.ExpectQuery(regexp.QuoteMeta(
			`UPDATE livros SET pagina_atual = $1, status = $2, data_conclusao = CURRENT_DATE WHERE id = $3 RETURNING `+allColumns,
		)).WithArgs(412, "Concluído", int64(1)).WillReturnRows(rows)

		b, err := repo.Update(ctx, 1, book.Update{CurrentPage: intPtr(412), Status: statusPtr(book.Finished)})

		require.NoError(t, err)
		assert.Equal(t, 412, b.CurrentPage)
		assert.Equal(t, book.Finished, b.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update non-existent book returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		rows := sqlmock.NewRows(bookColumns())

		mock.ExpectQuery(regexp.QuoteMeta(
			`UPDATE livros SET pagina_atual = $1 WHERE id = $2 RETURNING `+allColumns,
		)).WithArgs(10, int64(999)).WillReturnRows(rows)

		_, err = repo.Update(ctx, 999, book.Update{CurrentPage: intPtr(10)})

		require.Error(t, err)
		assert.Equal(t, book.ErrNotFound, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update never reaches the database", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		_, err = repo.Update(ctx, 1, book.Update{})

		require.Error(t, err)
		assert.True(t, book.IsValidation(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Delete_Unit(t *testing.T) {
	t.Run("delete returns the row as it existed", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		rows := sqlmock.NewRows(bookColumns()).
			AddRow(1, "Duna", "Frank Herbert", 412, 120, "Lendo", nil)

		mock.ExpectQuery(regexp.QuoteMeta(
			`DELETE FROM livros WHERE id = $1 RETURNING `+allColumns,
		)).WithArgs(int64(1)).WillReturnRows(rows)

		b, err := repo.Delete(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Duna", b.Title)
		assert.Equal(t, 120, b.CurrentPage)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete non-existent book returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &Repository{DB: db}
		ctx := context.Background()

		rows := sqlmock.NewRows(bookColumns())

		mock.ExpectQuery(regexp.QuoteMeta(
			`DELETE FROM livros WHERE id = $1 RETURNING `+allColumns,
		)).WithArgs(int64(999)).WillReturnRows(rows)

		_, err = repo.Delete(ctx, 999)

		require.Error(t, err)
		assert.Equal(t, book.ErrNotFound, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_CreateTable_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &Repository{DB: db}
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(
		`CREATE TABLE IF NOT EXISTS livros`,
	)).WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.CreateTable(ctx)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_NotFoundIsIsable(t *testing.T) {
	// O mapeamento para 404 na camada web depende de errors.Is
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &Repository{DB: db}
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allColumns+` FROM livros WHERE id = $1`,
	)).WithArgs(42).WillReturnRows(sqlmock.NewRows(bookColumns()))

	_, err = repo.Select(ctx, 42)
	assert.True(t, errors.Is(err, book.ErrNotFound))
}
