package seed

import (
	"fmt"
	"os"

	"github.com/marcelsud/plano-leitura/book"
	"gopkg.in/yaml.v3"
)

/* Loader manages the initial book list from livros.yaml.
 * The file is validated up front so a broken seed fails the boot, not the
 * first insert.
 */

// File represents the structure of livros.yaml
type File struct {
	Livros []Entry `yaml:"livros"`
}

// Entry represents a single book in the YAML file
type Entry struct {
	Titulo       string `yaml:"titulo"`
	Autor        string `yaml:"autor"`
	TotalPaginas int    `yaml:"total_paginas"`
	PaginaAtual  int    `yaml:"pagina_atual"` // optional, defaults to 0
	Status       string `yaml:"status"`       // optional, defaults to Pendente
}

// Validate checks the entry with the same rules the API applies on create
func (e Entry) Validate() error {
	if e.Titulo == "" {
		return fmt.Errorf("titulo cannot be empty")
	}
	if e.TotalPaginas <= 0 {
		return fmt.Errorf("total_paginas must be positive for %q", e.Titulo)
	}
	if e.PaginaAtual < 0 || e.PaginaAtual > e.TotalPaginas {
		return fmt.Errorf("pagina_atual must be between 0 and %d for %q", e.TotalPaginas, e.Titulo)
	}
	if e.Status != "" {
		if _, err := book.ParseStatus(e.Status); err != nil {
			return fmt.Errorf("invalid status for %q: %w", e.Titulo, err)
		}
	}
	return nil
}

// Progress returns the partial update that carries the entry's non-default
// progress, if any. Feeding it through the regular update path keeps the
// completion-date derivation in one place.
func (e Entry) Progress() (book.Update, bool) {
	var upd book.Update
	if e.PaginaAtual > 0 {
		page := e.PaginaAtual
		upd.CurrentPage = &page
	}
	if e.Status != "" {
		// Validate already ran; a parse failure here is a programming error
		status, err := book.ParseStatus(e.Status)
		if err == nil && status != book.Pending {
			upd.Status = &status
		}
	}
	return upd, !upd.IsEmpty()
}

// Loader holds the loaded entries
type Loader struct {
	entries []Entry
}

// NewLoader creates a new seed loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the livros.yaml file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing seed YAML: %w", err)
	}

	for _, entry := range file.Livros {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("validating seed entry: %w", err)
		}
	}

	l.entries = file.Livros
	return nil
}

// List returns all loaded entries
func (l *Loader) List() []Entry {
	return l.entries
}
