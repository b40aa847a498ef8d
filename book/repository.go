package book

import "context"

/* Interfaces pequenas */

/* Interfaces abstraem comportamento e não coisas */

/* Não escrevemos interfaces para testes, mas sim para usuários (que utilizam a api/interface) */

type Reader interface {
	Select(ctx context.Context, id int64) (Book, error)
	SelectAll(ctx context.Context) ([]Book, error)
}

/* Update e Delete devolvem a linha afetada porque o contrato da API devolve
 * o registro pós-atualização e o registro como existia antes da remoção.
 */

type Writer interface {
	Insert(ctx context.Context, book Book) (int64, error)
	Update(ctx context.Context, id int64, upd Update) (Book, error)
	Delete(ctx context.Context, id int64) (Book, error)
}

/* Composição de interfaces */

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
