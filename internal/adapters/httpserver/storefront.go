package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/phenrril/fashionshop/internal/domain"
)

type cartView struct {
	Items        []domain.CartItem `json:"items"`
	Count        int               `json:"count"`
	Subtotal     domain.Money      `json:"subtotal"`
	SubtotalText string            `json:"subtotalText"`
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	list := s.catalog.List()
	if r.URL.Query().Get("featured") == "1" {
		list = s.catalog.Featured()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"source":   s.catalog.Source(),
		"products": list,
	})
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	p, ok := s.catalog.Get(id)
	if !ok {
		writeError(w, r, errors.Wrapf(domain.ErrDataAbsent, "producto %q", id))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) writeCart(w http.ResponseWriter, code int) {
	sub := s.cart.Subtotal()
	writeJSON(w, code, cartView{
		Items:        s.cart.Items(),
		Count:        s.cart.TotalCount(),
		Subtotal:     sub,
		SubtotalText: sub.String(),
	})
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	s.writeCart(w, http.StatusOK)
}

func (s *Server) apiCartAdd(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProductID string `json:"productId"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.cart.Add(r.Context(), in.ProductID); err != nil {
		writeError(w, r, err)
		return
	}
	s.writeCart(w, http.StatusOK)
}

func (s *Server) apiCartQuantity(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Delta int `json:"delta"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.cart.ChangeQuantity(r.Context(), mux.Vars(r)["id"], in.Delta); err != nil {
		writeError(w, r, err)
		return
	}
	s.writeCart(w, http.StatusOK)
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.Remove(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	s.writeCart(w, http.StatusOK)
}

func (s *Server) apiCartClear(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.Clear(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	s.writeCart(w, http.StatusOK)
}

func (s *Server) apiFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ids": s.favorites.List()})
}

func (s *Server) apiFavoriteToggle(w http.ResponseWriter, r *http.Request) {
	on, err := s.favorites.Toggle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorite": on, "ids": s.favorites.List()})
}

func (s *Server) apiFavoriteRemove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if s.favorites.Has(id) {
		if _, err := s.favorites.Toggle(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorite": false, "ids": s.favorites.List()})
}
