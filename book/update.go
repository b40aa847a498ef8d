package book

/* Update é o diff que o cliente envia: apenas os campos presentes são
 * alterados no armazenamento. A data de conclusão nunca vem do cliente,
 * ela é derivada da mudança de status.
 */

// Update describes a partial update of a book.
// Nil fields are left untouched in storage.
type Update struct {
	CurrentPage *int
	Status      *Status
}

// IsEmpty reports whether the update would touch no column at all
func (u Update) IsEmpty() bool {
	return u.CurrentPage == nil && u.Status == nil
}

// Validate checks the supplied fields in isolation.
// The upper bound on CurrentPage depends on the stored record and is
// enforced by the service.
func (u Update) Validate() error {
	if u.IsEmpty() {
		return ValidationError{Field: "body", Message: "nenhum campo válido para atualização fornecido"}
	}
	if u.CurrentPage != nil && *u.CurrentPage < 0 {
		return ValidationError{Field: "pagina_atual", Message: "página atual deve ser um número não negativo"}
	}
	if u.Status != nil {
		if err := u.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}
