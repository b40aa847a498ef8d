package main

import (
	"context"
	"fmt"

	"github.com/marcelsud/plano-leitura/book"
	"github.com/marcelsud/plano-leitura/book/postgres"
	"github.com/marcelsud/plano-leitura/config"
)

/*
CLI - passeio completo pelo ciclo CRUD do plano de leitura

Este CLI demonstra:
- Como usar Config para carregar variáveis PostgreSQL
- Como usar o postgres.Repository e o book.Service
- A atualização parcial: página e status em uma única chamada

Execute com:
  go run cmd/cli/main.go

Certifique-se de que o PostgreSQL está rodando e o .env está configurado
com as variáveis POSTGRES_*.
*/

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Printf("error loading config: %v\n", err)
		return
	}
	if err := cfg.ValidatePostgres(); err != nil {
		fmt.Printf("configuration validation failed: %v\n", err)
		return
	}

	ctx := context.Background()

	fmt.Printf("connecting to PostgreSQL at %s:%s...\n", cfg.PostgresHost, cfg.PostgresPort)
	repo, err := postgres.NewRepositoryWithPoolConfig(
		cfg.PostgresConnectionString(),
		cfg.GetPostgresMaxOpenConns(),
		cfg.GetPostgresMaxIdleConns(),
		cfg.GetPostgresConnMaxLifeMinutes(),
	)
	if err != nil {
		fmt.Printf("error connecting to PostgreSQL: %v\n", err)
		return
	}
	defer repo.Close(ctx)

	if err := repo.CreateTable(ctx); err != nil {
		fmt.Printf("error creating table: %v\n", err)
		return
	}

	s := book.NewService(repo)

	// Criar
	fmt.Println("\ncreating a new book...")
	created, err := s.Create(ctx, "Duna", "Frank Herbert", 412)
	if err != nil {
		fmt.Printf("error creating book: %v\n", err)
		return
	}
	printBook(created)

	// Avançar a leitura
	fmt.Println("\nupdating current page...")
	page := 200
	updated, err := s.Update(ctx, created.ID, book.Update{CurrentPage: &page})
	if err != nil {
		fmt.Printf("error updating book: %v\n", err)
		return
	}
	printBook(updated)

	// Concluir: página final e status na mesma chamada
	fmt.Println("\nfinishing the book (page and status in one update)...")
	lastPage := updated.TotalPages
	finished := book.Finished
	updated, err = s.Update(ctx, created.ID, book.Update{CurrentPage: &lastPage, Status: &finished})
	if err != nil {
		fmt.Printf("error finishing book: %v\n", err)
		return
	}
	printBook(updated)

	// Listar
	fmt.Println("\nall books, newest first:")
	books, err := s.List(ctx)
	if err != nil {
		fmt.Printf("error listing books: %v\n", err)
		return
	}
	for _, b := range books {
		printBook(b)
	}

	// Deletar
	fmt.Printf("\ndeleting book %d...\n", created.ID)
	deleted, err := s.Delete(ctx, created.ID)
	if err != nil {
		fmt.Printf("error deleting book: %v\n", err)
		return
	}
	fmt.Printf("deleted: %s\n", deleted.Title)
}

func printBook(b book.Book) {
	finished := "-"
	if b.FinishedAt != nil {
		finished = b.FinishedAt.Format("2006-01-02")
	}
	fmt.Printf("  [%d] %s, %s | %d/%d páginas (%.2f%%, faltam %d) | %s | concluído em %s\n",
		b.ID, b.Title, b.Author, b.CurrentPage, b.TotalPages, b.Progress(), b.PagesLeft(), b.Status, finished)
}
