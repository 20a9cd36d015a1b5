// Package fakeapi is an in-memory stand-in for the relief backend, used by
// tests. It implements only the request/response contract the client relies
// on, records every call, and lets a test force any route to fail.
package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"reliefctl/internal/api"

	"github.com/gorilla/mux"
)

// Call is one recorded request.
type Call struct {
	Method    string
	Path      string
	Body      string
	RequestID string
	Cookie    string
}

// Failure forces a route to answer with Status and an optional {message}.
type Failure struct {
	Status  int
	Message string
}

// Server is a fake relief backend.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	calls        []Call
	failures     map[string]Failure
	Inventory    []api.Supply
	Available    []api.Supply
	Reports      []api.Report
	Stations     []string
	MentalHealth api.MentalHealthStatus
	ChatReply    string
	AidMessage   string
}

// New starts a fake backend. Close it with Server.Close.
func New() *Server {
	s := &Server{
		failures:     make(map[string]Failure),
		MentalHealth: api.MentalHealthStatus{Available: true},
		ChatReply:    "I'm here to listen.",
		AidMessage:   "Truck 1 dispatched.",
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// Fail makes every later request to path fail with f.
func (s *Server) Fail(path string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = f
}

// Calls returns a copy of the recorded calls.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the recorded calls whose path equals path.
func (s *Server) CallsTo(path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) router() http.Handler {
	// Encoded paths keep "%2F" inside station names from splitting the route.
	r := mux.NewRouter().UseEncodedPath()
	r.Use(s.record)

	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/inventory", s.handleInventory).Methods(http.MethodGet)
	r.HandleFunc("/api/add-supplies", s.handleAddSupplies).Methods(http.MethodPost)
	r.HandleFunc("/api/reports", s.handleReports).Methods(http.MethodGet)
	r.HandleFunc("/api/delete-report/{id}", s.handleDeleteReport).Methods(http.MethodPost)
	r.HandleFunc("/api/stations", s.handleStations).Methods(http.MethodGet)
	r.HandleFunc("/api/list-stations", s.handleStations).Methods(http.MethodGet)
	r.HandleFunc("/api/add-station", s.handleAddStation).Methods(http.MethodPost)
	r.HandleFunc("/api/delete-station/{name}", s.handleDeleteStation).Methods(http.MethodPost)
	r.HandleFunc("/api/file-report", s.handleFileReport).Methods(http.MethodPost)
	r.HandleFunc("/api/available-supplies", s.handleAvailable).Methods(http.MethodGet)
	r.HandleFunc("/api/request-aid", s.handleRequestAid).Methods(http.MethodPost)
	r.HandleFunc("/api/mental-health/check", s.handleMentalCheck).Methods(http.MethodGet)
	r.HandleFunc("/api/mental-health/configure", s.handleMentalConfigure).Methods(http.MethodPost)
	r.HandleFunc("/api/mental-health/message", s.handleMentalMessage).Methods(http.MethodPost)
	return r
}

// record stores the call and short-circuits configured failures.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		cookie := ""
		if c, err := r.Cookie("session"); err == nil {
			cookie = c.Value
		}

		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method:    r.Method,
			Path:      r.URL.EscapedPath(),
			Body:      string(body),
			RequestID: r.Header.Get("X-Request-ID"),
			Cookie:    cookie,
		})
		f, failing := s.failures[r.URL.EscapedPath()]
		s.mu.Unlock()

		if failing {
			if f.Message != "" {
				writeJSON(w, f.Status, api.Acknowledgement{Success: false, Message: f.Message})
			} else {
				w.WriteHeader(f.Status)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, api.Acknowledgement{Message: "bad request"})
		return
	}
	userType := api.UserTypePublic
	if strings.TrimSpace(req.Password) == "gov" {
		userType = api.UserTypeGovernment
	}
	http.SetCookie(w, &http.Cookie{Name: "session", Value: string(userType) + ":" + req.Name, Path: "/"})
	writeJSON(w, http.StatusOK, api.LoginResult{Success: true, UserType: userType})
}

// sessionName is the name the backend files reports under: "Government" for
// government sessions, the login name for public ones, "User" without a session.
func sessionName(r *http.Request) string {
	c, err := r.Cookie("session")
	if err != nil {
		return "User"
	}
	userType, name, _ := strings.Cut(c.Value, ":")
	if api.UserType(userType) == api.UserTypeGovernment {
		return "Government"
	}
	if name == "" {
		return "User"
	}
	return name
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.Inventory))
}

func (s *Server) handleAddSupplies(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Supply   string `json:"supply"`
		Quantity int    `json:"quantity"`
	}
	if err := decode(r, &req); err != nil || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, api.Acknowledgement{Message: "Quantity must be positive."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Inventory {
		if s.Inventory[i].Name == req.Supply {
			s.Inventory[i].Quantity += req.Quantity
			writeJSON(w, http.StatusOK, api.Acknowledgement{Success: true})
			return
		}
	}
	s.Inventory = append(s.Inventory, api.Supply{Name: req.Supply, Quantity: req.Quantity})
	writeJSON(w, http.StatusOK, api.Acknowledgement{Success: true})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.Reports))
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	ref := pathVar(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rep := range s.Reports {
		if string(rep.ID) == ref && ref != "" {
			s.Reports = append(s.Reports[:i], s.Reports[i+1:]...)
			writeJSON(w, http.StatusOK, api.Acknowledgement{Success: true})
			return
		}
	}
	if pos, err := strconv.Atoi(ref); err == nil && pos >= 1 && pos <= len(s.Reports) {
		s.Reports = append(s.Reports[:pos-1], s.Reports[pos:]...)
		writeJSON(w, http.StatusOK, api.Acknowledgement{Success: true})
		return
	}
	writeJSON(w, http.StatusNotFound, api.Acknowledgement{})
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.Stations))
}

func (s *Server) handleAddStation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	_ = decode(r, &req)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, api.Acknowledgement{Message: "Station name required."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.Stations {
		if st == name {
			writeJSON(w, http.StatusBadRequest, api.Acknowledgement{Message: "Station already exists."})
			return
		}
	}
	s.Stations = append(s.Stations, name)
	writeJSON(w, http.StatusOK, api.Acknowledgement{Success: true, Message: "Added station: " + name})
}

func (s *Server) handleDeleteStation(w http.ResponseWriter, r *http.Request) {
	name := pathVar(r, "name")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.Stations {
		if st == name {
			s.Stations = append(s.Stations[:i], s.Stations[i+1:]...)
			writeJSON(w, http.StatusOK, api.Acknowledgement{Success: true})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, api.Acknowledgement{})
}

func (s *Server) handleFileReport(w http.ResponseWriter, r *http.Request) {
	var req api.ReportSubmission
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, api.Acknowledgement{})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reports = append(s.Reports, api.Report{
		ID:           api.ReportID(strconv.Itoa(len(s.calls))),
		DisasterType: req.DisasterType,
		Name:         sessionName(r),
		Details:      req.Details,
	})
	writeJSON(w, http.StatusOK, api.Acknowledgement{Success: true, Message: "Report filed successfully."})
}

func (s *Server) handleAvailable(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.Available))
}

func (s *Server) handleRequestAid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Supply   string `json:"supply"`
		Quantity int    `json:"quantity"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, api.Acknowledgement{Message: "bad request"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Available {
		if s.Available[i].Name != req.Supply {
			continue
		}
		if req.Quantity > s.Available[i].Quantity {
			writeJSON(w, http.StatusBadRequest, api.Acknowledgement{
				Message: "Only " + strconv.Itoa(s.Available[i].Quantity) + " available.",
			})
			return
		}
		s.Available[i].Quantity -= req.Quantity
		writeJSON(w, http.StatusOK, api.Acknowledgement{Success: true, Message: s.AidMessage})
		return
	}
	writeJSON(w, http.StatusBadRequest, api.Acknowledgement{Message: "Only 0 available."})
}

func (s *Server) handleMentalCheck(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.MentalHealth)
}

func (s *Server) handleMentalConfigure(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	_ = decode(r, &req)
	if strings.TrimSpace(req.APIKey) == "" {
		writeJSON(w, http.StatusBadRequest, api.Acknowledgement{Message: "API key required."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MentalHealth.Configured = true
	writeJSON(w, http.StatusOK, api.Acknowledgement{Success: true, Message: "Mental health AI configured."})
}

func (s *Server) handleMentalMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	_ = decode(r, &req)
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, api.Acknowledgement{Message: "Message required."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, api.Acknowledgement{Success: true, Message: s.ChatReply})
}

func pathVar(r *http.Request, key string) string {
	raw := mux.Vars(r)[key]
	v, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return v
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
