package book

import (
	"math"
	"time"
)

/* Sobre pacotes
 *
 * Os pacotes devem fornecer algo e não conter algo (ex: modelos, utilitários, auxiliares).
 * Isso (pacotes que contém algo) causa problemas de dependências, pois quando você precisa alterar algo,
 * precisa alterar muitos lugares
 *
 */

/* Sem tags, representa um livro em relação ao negócio.
 * As tags JSON pertencem à camada web; as colunas, à camada de armazenamento.
 */

// Book is a tracked reading item with progress and completion state
type Book struct {
	ID          int64
	Title       string
	Author      string
	TotalPages  int
	CurrentPage int
	Status      Status
	// FinishedAt is derived from Status: non-nil iff the book is Finished.
	// Never set directly by callers.
	FinishedAt *time.Time
}

// PagesLeft returns how many pages remain to be read
func (b Book) PagesLeft() int {
	return b.TotalPages - b.CurrentPage
}

// Progress returns the reading progress as a percentage, rounded to two decimals
func (b Book) Progress() float64 {
	if b.TotalPages == 0 {
		return 0
	}
	pct := float64(b.CurrentPage) / float64(b.TotalPages) * 100
	return math.Round(pct*100) / 100
}
