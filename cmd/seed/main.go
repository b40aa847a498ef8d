package main

import (
	"context"
	"fmt"

	"github.com/marcelsud/plano-leitura/book"
	"github.com/marcelsud/plano-leitura/book/postgres"
	"github.com/marcelsud/plano-leitura/config"
	"github.com/marcelsud/plano-leitura/seed"
)

/*
Seed - carga inicial do plano de leitura

Lê livros.yaml (ou o caminho em SEED_FILE), valida as entradas e insere os
livros via camada de negócio. Progresso não-zero entra pelo caminho normal de
atualização parcial, então a derivação da data de conclusão vale também aqui.

Execute com:
  go run cmd/seed/main.go
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

	loader := seed.NewLoader()
	if err := loader.Load(cfg.GetSeedFile()); err != nil {
		fmt.Printf("error loading seed file: %v\n", err)
		return
	}

	ctx := context.Background()

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

	for _, entry := range loader.List() {
		created, err := s.Create(ctx, entry.Titulo, entry.Autor, entry.TotalPaginas)
		if err != nil {
			fmt.Printf("error creating %q: %v\n", entry.Titulo, err)
			return
		}
		if upd, ok := entry.Progress(); ok {
			created, err = s.Update(ctx, created.ID, upd)
			if err != nil {
				fmt.Printf("error applying progress for %q: %v\n", entry.Titulo, err)
				return
			}
		}
		fmt.Printf("[%d] %s (%s) - %d/%d páginas\n",
			created.ID, created.Title, created.Status, created.CurrentPage, created.TotalPages)
	}

	fmt.Printf("%d livros carregados\n", len(loader.List()))
}
