// Package mockserver is an in-memory stand-in for the inventory backend.
// It implements the exact endpoint and wire-field contract the sync client
// speaks, for local development (cmd/mockserver) and for tests via httptest.
package mockserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bagsync/internal/codec"
)

// Server holds the mock backend state and its router.
type Server struct {
	store *store
}

// New returns a mock backend with a canned user and empty inventory.
func New() *Server {
	return &Server{store: newStore()}
}

// SetUser replaces the identity returned by the login handshake.
func (s *Server) SetUser(u codec.UserWire) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.user = u
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", s.login)

	r.Route("/bags", func(r chi.Router) {
		r.Post("/", s.createBag)
		r.Get("/count/{userID}", s.countBags)
		r.Get("/{key}", s.listBagsOrGetBag)
		r.Put("/{id}", s.updateBag)
		r.Delete("/{id}", s.deleteBag)
	})

	r.Get("/items_by_bag_id/{bagID}", s.listItems)

	r.Route("/items", func(r chi.Router) {
		r.Post("/", s.createItem)
		r.Get("/count/{userID}", s.countItems)
		r.Get("/{id}", s.getItem)
		r.Put("/{id}", s.updateItem)
		r.Delete("/{id}", s.deleteItem)
		r.Get("/{id}/inspections", s.listInspections)
		r.Post("/{id}/inspections", s.createInspection)
	})

	r.Post("/upload", s.upload)
	r.Get("/uploads/{name}", s.serveUpload)

	return r
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	s.store.mu.RLock()
	user := s.store.user
	s.store.mu.RUnlock()
	jsonResponse(w, http.StatusOK, user)
}

func (s *Server) createBag(w http.ResponseWriter, r *http.Request) {
	var bag codec.BagWire
	if err := decodeJSON(r, &bag); err != nil {
		jsonError(w, http.StatusBadRequest, "malformed bag")
		return
	}
	if bag.ID == "" {
		jsonError(w, http.StatusBadRequest, "bag_id is required")
		return
	}
	// The client generates the primary key; it is stored as supplied.
	s.store.putBag(bag)
	jsonResponse(w, http.StatusOK, bag)
}

// listBagsOrGetBag disambiguates GET /bags/{key}: an integer key lists the
// bags of that owner, anything else is a single-bag lookup by id. This
// mirrors the backend's overloaded route.
func (s *Server) listBagsOrGetBag(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if userID, err := strconv.Atoi(key); err == nil {
		jsonResponse(w, http.StatusOK, s.store.bagsByOwner(userID))
		return
	}

	bag, ok := s.store.getBag(key)
	if !ok {
		jsonError(w, http.StatusNotFound, "bag not found")
		return
	}
	jsonResponse(w, http.StatusOK, bag)
}

func (s *Server) updateBag(w http.ResponseWriter, r *http.Request) {
	var upd codec.BagUpdate
	if err := decodeJSON(r, &upd); err != nil {
		jsonError(w, http.StatusBadRequest, "malformed bag update")
		return
	}
	if !s.store.updateBag(chi.URLParam(r, "id"), upd) {
		jsonError(w, http.StatusNotFound, "bag not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) deleteBag(w http.ResponseWriter, r *http.Request) {
	if !s.store.deleteBag(chi.URLParam(r, "id")) {
		jsonError(w, http.StatusNotFound, "bag not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) countBags(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"count": s.store.countBags(userID)})
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, s.store.itemsByBag(chi.URLParam(r, "bagID")))
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var item codec.ItemWire
	if err := decodeJSON(r, &item); err != nil {
		jsonError(w, http.StatusBadRequest, "malformed item")
		return
	}
	if _, ok := s.store.getBag(item.BagID); !ok {
		jsonError(w, http.StatusBadRequest, "bag_id does not reference an existing bag")
		return
	}
	created := s.store.createItem(item)
	jsonResponse(w, http.StatusOK, created)
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	item, ok := s.store.getItem(id)
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	var upd codec.ItemUpdate
	if err := decodeJSON(r, &upd); err != nil {
		jsonError(w, http.StatusBadRequest, "malformed item update")
		return
	}
	if !s.store.updateItem(id, upd) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	if !s.store.deleteItem(id) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) countItems(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"count": s.store.countItems(userID)})
}

func (s *Server) listInspections(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	jsonResponse(w, http.StatusOK, s.store.inspectionsByItem(id))
}

func (s *Server) createInspection(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	var create codec.InspectionCreate
	if err := decodeJSON(r, &create); err != nil {
		jsonError(w, http.StatusBadRequest, "malformed inspection")
		return
	}
	create.ItemID = id
	rec, ok := s.store.appendInspection(create)
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusCreated, rec)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	var data []byte

	if err := r.ParseMultipartForm(20 << 20); err == nil {
		file, _, err := r.FormFile("image")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "missing image part")
			return
		}
		defer file.Close()
		data, err = io.ReadAll(file)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "reading image part")
			return
		}
	} else {
		// Also accept a bare binary body.
		body, err := io.ReadAll(r.Body)
		if err != nil || len(body) == 0 {
			jsonError(w, http.StatusBadRequest, "empty upload")
			return
		}
		data = body
	}

	name := s.store.saveUpload(data)
	jsonResponse(w, http.StatusOK, map[string]string{
		"url": "http://" + r.Host + "/uploads/" + name,
	})
}

func (s *Server) serveUpload(w http.ResponseWriter, r *http.Request) {
	data, ok := s.store.getUpload(chi.URLParam(r, "name"))
	if !ok {
		jsonError(w, http.StatusNotFound, "upload not found")
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(data)
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
