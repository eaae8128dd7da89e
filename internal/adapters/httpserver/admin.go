package httpserver

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) apiAdminConnect(w http.ResponseWriter, r *http.Request) {
	var in struct {
		APIKey string `json:"apiKey"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.poller.Connect(r.Context(), in.APIKey); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.poller.Snapshot())
}

// apiAdminDisconnect stops polling; ?forget=1 also drops the stored key.
func (s *Server) apiAdminDisconnect(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("forget") == "1" {
		if err := s.poller.Forget(r.Context()); err != nil {
			writeError(w, r, err)
			return
		}
	} else {
		s.poller.Disconnect()
	}
	writeJSON(w, http.StatusOK, s.poller.Snapshot())
}

func (s *Server) apiAdminDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.poller.Snapshot())
}

func (s *Server) apiAdminOrder(w http.ResponseWriter, r *http.Request) {
	d, err := s.admin.Order(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) apiAdminOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.admin.UpdateStatus(r.Context(), mux.Vars(r)["id"], in.Status); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.poller.Snapshot())
}

func (s *Server) apiAdminOrderDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.DeleteOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.poller.Snapshot())
}

func (s *Server) apiAdminExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	n, err := s.admin.Export(r.Context(), &buf)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=pedidos.xlsx")
	w.Header().Set("X-Order-Count", strconv.Itoa(n))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
