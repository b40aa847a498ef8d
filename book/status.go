package book

import (
	"bytes"
	"database/sql/driver"
	"fmt"
)

/* Criar tipos de dados específicos para a aplicação.
 * Usar o compilador a seu favor, tentar encontrar erros em tempo de compilação e não de execução.
 */

// Status represents the reading state of a book
// Follows the lifecycle: Pending -> Reading -> Finished
type Status int

const (
	Pending Status = iota + 1
	Reading
	Finished
)

/* Os literais do formato de troca são os mesmos da aplicação original,
 * sensíveis a maiúsculas e ao acento: Pendente, Lendo, Concluído.
 */

// String returns the wire/storage representation of the status
func (s Status) String() string {
	switch s {
	case Pending:
		return "Pendente"
	case Reading:
		return "Lendo"
	case Finished:
		return "Concluído"
	}
	return "Unknown"
}

// ParseStatus creates a Status from its wire representation.
// Anything outside the fixed set is a validation failure, not a default.
func ParseStatus(str string) (Status, error) {
	switch str {
	case "Pendente":
		return Pending, nil
	case "Lendo":
		return Reading, nil
	case "Concluído":
		return Finished, nil
	}
	return 0, ValidationError{Field: "status", Message: fmt.Sprintf("status inválido: %q (use Lendo, Concluído ou Pendente)", str)}
}

// Validate checks if the status is inside the fixed set
func (s Status) Validate() error {
	if s < Pending || s > Finished {
		return ValidationError{Field: "status", Message: fmt.Sprintf("status inválido: %d", s)}
	}
	return nil
}

/* Define how to transform a Status object into JSON. Example of using the standard language interfaces
 * https://eltonminetto.dev/post/2022-06-07-using-go-interfaces/
 */

// MarshalJSON renders the status as its quoted wire literal
func (s Status) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(s.String())
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

/* O banco guarda o literal em uma coluna TEXT, como no esquema original.
 * Scanner/Valuer mantêm a conversão em um lugar só.
 */

// Scan implements sql.Scanner, reading the TEXT column back into the enum
func (s *Status) Scan(src any) error {
	var str string
	switch v := src.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("scanning status: unsupported type %T", src)
	}
	parsed, err := ParseStatus(str)
	if err != nil {
		return fmt.Errorf("scanning status: %w", err)
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer, storing the wire literal
func (s Status) Value() (driver.Value, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s.String(), nil
}
