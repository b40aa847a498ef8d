package book

import (
	"context"
	"fmt"
	"strings"
)

/*
 * - Quando uma struct representa DADOS deveria usar sempre value semantics e não pointer (ex: Book).
 * Se a struct representa uma API deveria ser pointer (ex: Service).
 */

type UseCase interface {
	Create(ctx context.Context, title, author string, totalPages int) (Book, error)
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Update(ctx context.Context, id int64, upd Update) (Book, error)
	Delete(ctx context.Context, id int64) (Book, error)
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Create validates the input and stores a new book with zeroed progress
func (s *Service) Create(ctx context.Context, title, author string, totalPages int) (Book, error) {
	if strings.TrimSpace(title) == "" {
		return Book{}, ValidationError{Field: "titulo", Message: "título e total de páginas são obrigatórios"}
	}
	if totalPages <= 0 {
		return Book{}, ValidationError{Field: "total_paginas", Message: "total de páginas deve ser um número positivo"}
	}
	b := Book{
		Title:       title,
		Author:      author,
		TotalPages:  totalPages,
		CurrentPage: 0,
		Status:      Pending,
	}
	id, err := s.Repo.Insert(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("inserting book: %w", err)
	}
	b.ID = id
	return b, nil
}

// List returns all books, most recently created first
func (s *Service) List(ctx context.Context) ([]Book, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

// Update applies a partial update. Page and status may come together in a
// single call, so finishing a book is one write, not two.
// The current page may never exceed the stored page total; that invariant
// is enforced here and not delegated to the browser.
func (s *Service) Update(ctx context.Context, id int64, upd Update) (Book, error) {
	if err := upd.Validate(); err != nil {
		return Book{}, err
	}
	current, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	if upd.CurrentPage != nil && *upd.CurrentPage > current.TotalPages {
		return Book{}, ValidationError{
			Field:   "pagina_atual",
			Message: fmt.Sprintf("página atual (%d) não pode exceder o total de páginas (%d)", *upd.CurrentPage, current.TotalPages),
		}
	}
	updated, err := s.Repo.Update(ctx, id, upd)
	if err != nil {
		return Book{}, fmt.Errorf("updating book: %w", err)
	}
	return updated, nil
}

// Delete removes a book and returns it as it existed before removal
func (s *Service) Delete(ctx context.Context, id int64) (Book, error) {
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("deleting book: %w", err)
	}
	return deleted, nil
}
