package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/fashionshop/internal/domain"
	"github.com/phenrril/fashionshop/internal/usecase"
)

// Server is the local console: the storefront and admin screens talk to it
// over JSON, and the dashboard listens on /ws/admin.
type Server struct {
	router    *mux.Router
	catalog   *usecase.Catalog
	cart      *usecase.CartUC
	favorites *usecase.FavoritesUC
	poller    *usecase.Poller
	admin     *usecase.AdminUC
	hub       *Hub
}

func New(c *usecase.Catalog, cart *usecase.CartUC, fav *usecase.FavoritesUC, p *usecase.Poller, admin *usecase.AdminUC, hub *Hub) http.Handler {
	s := &Server{router: mux.NewRouter(), catalog: c, cart: cart, favorites: fav, poller: p, admin: admin, hub: hub}
	s.routes()
	return Chain(s.router,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/products", s.apiProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", s.apiProductByID).Methods(http.MethodGet)

	api.HandleFunc("/cart", s.apiCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", s.apiCartAdd).Methods(http.MethodPost)
	api.HandleFunc("/cart", s.apiCartClear).Methods(http.MethodDelete)
	api.HandleFunc("/cart/{id}", s.apiCartQuantity).Methods(http.MethodPatch)
	api.HandleFunc("/cart/{id}", s.apiCartRemove).Methods(http.MethodDelete)

	api.HandleFunc("/favorites", s.apiFavorites).Methods(http.MethodGet)
	api.HandleFunc("/favorites/{id}", s.apiFavoriteToggle).Methods(http.MethodPost)
	api.HandleFunc("/favorites/{id}", s.apiFavoriteRemove).Methods(http.MethodDelete)

	adm := api.PathPrefix("/admin").Subrouter()
	adm.HandleFunc("/connect", s.apiAdminConnect).Methods(http.MethodPost)
	adm.HandleFunc("/disconnect", s.apiAdminDisconnect).Methods(http.MethodPost)
	adm.HandleFunc("/dashboard", s.apiAdminDashboard).Methods(http.MethodGet)
	// export antes que {id}
	adm.HandleFunc("/orders/export", s.apiAdminExport).Methods(http.MethodGet)
	adm.HandleFunc("/orders/{id}", s.apiAdminOrder).Methods(http.MethodGet)
	adm.HandleFunc("/orders/{id}/status", s.apiAdminOrderStatus).Methods(http.MethodPut)
	adm.HandleFunc("/orders/{id}", s.apiAdminOrderDelete).Methods(http.MethodDelete)

	if s.hub != nil {
		s.router.HandleFunc("/ws/admin", s.hub.ServeWS).Methods(http.MethodGet)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDataAbsent), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFeatureUnavailable):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrProtocol):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= 500 {
		log.Warn().Err(err).Str("path", r.URL.Path).Str("req_id", RequestIDFrom(r.Context())).Msg("request falló")
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(domain.ErrValidation, "json inválido")
	}
	return nil
}
