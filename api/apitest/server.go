// Package apitest runs an in-process fake of the collaborator API for tests
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Account is a user the fake API knows about
type Account struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

// Server is a fake collaborator API. Tokens issued by /login and /register
// stay valid until /logout or Revoke.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	accounts  map[string]*Account // email -> account
	tokens    map[string]string   // token -> email
	requests  []string
	failUsers bool
	total     *int
}

func NewServer() *Server {
	s := &Server{
		accounts: make(map[string]*Account),
		tokens:   make(map[string]string),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /user", s.handleUser)
	mux.HandleFunc("GET /users", s.handleUsers)
	mux.HandleFunc("GET /questions", s.handleQuestions)
	mux.HandleFunc("GET /analytics", s.handleAnalytics)
	s.Server = httptest.NewServer(s.record(mux))
	return s
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// AddAccount registers an account that can log in
func (s *Server) AddAccount(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = len(s.accounts) + 1
	}
	s.accounts[a.Email] = &a
}

// IssueToken returns a valid token for the account with email
func (s *Server) IssueToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = email
	return token
}

// Revoke invalidates token, as if it had expired server side
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// FailUsers makes GET /users answer 500
func (s *Server) FailUsers(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUsers = fail
}

// SetUsersTotal overrides the pagination total reported by GET /users
func (s *Server) SetUsersTotal(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = &total
}

// Requests returns "METHOD /path" for every request served so far
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Count returns how many times "METHOD /path" was requested
func (s *Server) Count(methodPath string) int {
	n := 0
	for _, r := range s.Requests() {
		if r == methodPath {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) authorized(r *http.Request) (*Account, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	a, ok := s.accounts[email]
	return a, ok
}

func (s *Server) issue(w http.ResponseWriter, a *Account) {
	token := uuid.NewString()
	s.tokens[token] = a.Email
	writeJSON(w, http.StatusOK, map[string]any{"user": a, "token": token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[body.Email]
	if !ok || a.Password != body.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	s.issue(w, a)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		// no message: clients fall back to their own text
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[body.Email]; exists {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "The email has already been taken."})
		return
	}
	a := &Account{ID: len(s.accounts) + 1, Name: body.Name, Email: body.Email, Password: body.Password, Role: "admin"}
	s.accounts[a.Email] = a
	s.issue(w, a)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	_, ok := s.tokens[token]
	delete(s.tokens, token)
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	a, ok := s.authorized(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": a})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorized(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUsers {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	list := make([]*Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	total := len(list)
	if s.total != nil {
		total = *s.total
	}
	start := min((page-1)*limit, len(list))
	end := min(start+limit, len(list))

	writeJSON(w, http.StatusOK, map[string]any{
		"users": list[start:end],
		"pagination": map[string]int{
			"total":       total,
			"page":        page,
			"limit":       limit,
			"total_pages": (total + limit - 1) / limit,
		},
	})
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorized(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
		return
	}
	questions := make([]map[string]any, 0, 3)
	for i := 1; i <= 3; i++ {
		questions = append(questions, map[string]any{
			"id":       i,
			"question": fmt.Sprintf("%d + %d = ?", i, i),
			"options":  []string{strconv.Itoa(i * 2), strconv.Itoa(i*2 + 1)},
			"answer":   strconv.Itoa(i * 2),
			"category": "matematika",
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"questions":  questions,
		"pagination": map[string]int{"total": len(questions), "page": 1, "limit": 10, "total_pages": 1},
	})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorized(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_games":        12,
		"active_players":     5,
		"questions_answered": 80,
		"correct_rate":       0.75,
		"average_score":      64.5,
	})
}
