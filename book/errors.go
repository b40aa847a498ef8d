package book

import "errors"

/* Taxonomia de erros: validação (400), não encontrado (404) e o resto (500).
 * O mapeamento para HTTP acontece apenas na camada web.
 */

// ErrNotFound indicates the id has no matching record
var ErrNotFound = errors.New("livro não encontrado")

// ValidationError indicates missing or malformed caller input
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err carries a ValidationError anywhere in its chain
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
