package calculator

import (
	"net/http"

	"calculator-service/internal/handlers"

	"github.com/go-chi/chi/v5"
)

var binaryHandlers = map[Op]http.HandlerFunc{
	OpAdd:      AddHandler,
	OpSubtract: SubtractHandler,
	OpMultiply: MultiplyHandler,
	OpDivide:   DivideHandler,
}

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router) {
	r.Route("/calculator", func(r chi.Router) {
		r.Get("/", Operations)
		for _, op := range Ops {
			r.Post("/"+op.String(), binaryHandlers[op])
		}
		r.Post("/chain", Chain)
	})
}

// Operations handles GET /calculator and lists the supported operation names.
func Operations(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(Ops))
	for _, op := range Ops {
		names = append(names, op.String())
	}
	handlers.WriteJSON(w, http.StatusOK, map[string][]string{"operations": names})
}
