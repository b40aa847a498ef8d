package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/plano-leitura/book"
)

/*
* Representa o livro na camada web, por isso ele tem as tags json.
* As chaves seguem o formato de troca da API: português, como no banco.
 */
type createBookRequest struct {
	Titulo       string `json:"titulo"`
	Autor        string `json:"autor"`
	TotalPaginas *int   `json:"total_paginas"`
}

/* Atualização parcial: campos ausentes ficam nil e não tocam o registro */
type updateBookRequest struct {
	PaginaAtual *int    `json:"pagina_atual"`
	Status      *string `json:"status"`
}

type bookResponse struct {
	ID            int64   `json:"id"`
	Titulo        string  `json:"titulo"`
	Autor         *string `json:"autor"`
	TotalPaginas  int     `json:"total_paginas"`
	PaginaAtual   int     `json:"pagina_atual"`
	Status        string  `json:"status"`
	DataConclusao *string `json:"data_conclusao"`
}

type deleteBookResponse struct {
	Message     string       `json:"message"`
	DeletedBook bookResponse `json:"deletedBook"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func newBookResponse(b book.Book) bookResponse {
	resp := bookResponse{
		ID:           b.ID,
		Titulo:       b.Title,
		TotalPaginas: b.TotalPages,
		PaginaAtual:  b.CurrentPage,
		Status:       b.Status.String(),
	}
	if b.Author != "" {
		author := b.Author
		resp.Autor = &author
	}
	if b.FinishedAt != nil {
		date := b.FinishedAt.Format("2006-01-02")
		resp.DataConclusao = &date
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
// Internal failures keep the underlying message in details for debugging.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve book.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Message})
	case errors.Is(err, book.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Livro não encontrado."})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Erro interno do servidor.", Details: err.Error()})
	}
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, book.ValidationError{Field: "id", Message: "id inválido"}
	}
	return id, nil
}

func getLivros(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := bookService.List(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		result := make([]bookResponse, 0, len(all))
		for _, b := range all {
			result = append(result, newBookResponse(b))
		}
		writeJSON(w, http.StatusOK, result)
	})
}

func postLivro(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br createBookRequest
		if err := json.NewDecoder(r.Body).Decode(&br); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Corpo da requisição inválido.", Details: err.Error()})
			return
		}
		if br.Titulo == "" || br.TotalPaginas == nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Título e total de páginas são obrigatórios."})
			return
		}
		created, err := bookService.Create(r.Context(), br.Titulo, br.Autor, *br.TotalPaginas)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newBookResponse(created))
	})
}

func putLivro(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		var br updateBookRequest
		if err := json.NewDecoder(r.Body).Decode(&br); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Corpo da requisição inválido.", Details: err.Error()})
			return
		}
		upd := book.Update{CurrentPage: br.PaginaAtual}
		if br.Status != nil {
			status, err := book.ParseStatus(*br.Status)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			upd.Status = &status
		}
		updated, err := bookService.Update(r.Context(), id, upd)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newBookResponse(updated))
	})
}

func deleteLivro(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		deleted, err := bookService.Delete(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deleteBookResponse{
			Message:     "Livro deletado com sucesso!",
			DeletedBook: newBookResponse(deleted),
		})
	})
}
