package root

import (
	"net/http"

	"assustadus/internal/http/responses"
)

type Handler struct {
	greeting string
}

func NewHandler(greeting string) *Handler {
	return &Handler{greeting: greeting}
}

// Greeting godoc
// @Summary  Service greeting
// @Produce  plain
// @Success  200  {string}  string  "Hello Assustadus!"
// @Router   / [get]
func (h *Handler) Greeting(w http.ResponseWriter, r *http.Request) {
	responses.WriteText(w, http.StatusOK, h.greeting)
}
