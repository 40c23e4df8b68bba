package testutils

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

//go:embed golfdata
var golfdata embed.FS

// Fixture values served by the fake backend.
const (
	UserID        = "6650b2e2d3c9b2e1f5a00001"
	Username      = "golfer"
	UserEmail     = "golfer@example.com"
	UserPassword  = "Passw0rd!"
	PebbleID      = "6650a1f1c2b8a1d0e4f00001"
	NineHoleID    = "6650a1f1c2b8a1d0e4f00002"
	RegisteredID  = "6650b2e2d3c9b2e1f5a00099"
	TakenUsername = "taken"

	// Searching for this fails with a 500.
	ErrorSearchTerm = "explode"
)

// FakeGolfServer stands in for the FORE backend.
type FakeGolfServer struct {
	s *httptest.Server

	mu     sync.Mutex
	posted []map[string]any
	// Users registered while running, by id.
	registered map[string]map[string]any
}

func NewFakeGolfServer() *FakeGolfServer {
	f := &FakeGolfServer{registered: make(map[string]map[string]any)}

	r := chi.NewRouter()
	r.Post("/courses/search", searchCoursesHandler)
	r.Route("/rounds", func(r chi.Router) {
		r.Get("/", getRoundsHandler)
		r.Post("/", f.postRoundHandler)
	})
	r.Route("/users", func(r chi.Router) {
		r.Post("/login", loginHandler)
		r.Post("/register", f.registerHandler)
		r.Get("/username-taken/{username}", usernameTakenHandler)
		r.Get("/email-taken/{email}", emailTakenHandler)
		r.Get("/{userID}", f.getUserHandler)
	})
	r.Post("/autofill-scores", autofillHandler)

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeGolfServer) Close() {
	f.s.Close()
}

func (f *FakeGolfServer) URL() string {
	return f.s.URL
}

// PostedRounds returns the bodies of every round posted so far.
func (f *FakeGolfServer) PostedRounds() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]map[string]any, len(f.posted))
	copy(res, f.posted)
	return res
}

func searchCoursesHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	name := strings.ToLower(req.Name)
	switch {
	case name == ErrorSearchTerm:
		writeDetail(w, http.StatusInternalServerError, "")
	case strings.Contains(name, "pebble"):
		serveFile(w, http.StatusOK, "courses.json")
	default:
		writeJSON(w, http.StatusOK, []any{})
	}
}

func getRoundsHandler(w http.ResponseWriter, r *http.Request) {
	ids := r.URL.Query()["ids"]
	if len(ids) == 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "")
		return
	}

	var rounds []map[string]any
	if err := readFile("rounds.json", &rounds); err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	withCourse := r.URL.Query().Get("retrieve_course_data") == "true"

	res := make([]map[string]any, 0, len(rounds))
	for _, rd := range rounds {
		if !wanted[rd["id"].(string)] {
			continue
		}
		if !withCourse {
			delete(rd, "course")
		}
		res = append(res, rd)
	}

	// The fixture is stored oldest first
	if r.URL.Query().Get("order") != "asc" {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (f *FakeGolfServer) postRoundHandler(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	if body["course_id"] != PebbleID && body["course_id"] != NineHoleID {
		writeDetail(w, http.StatusNotFound, "Course not found")
		return
	}
	if idx, ok := body["tee_box_index"].(float64); ok && idx < 0 {
		writeDetail(w, http.StatusBadRequest, "Provided tee box index is out of range")
		return
	}

	f.mu.Lock()
	f.posted = append(f.posted, body)
	f.mu.Unlock()

	writeDetail(w, http.StatusCreated, "success")
}

func (f *FakeGolfServer) getUserHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")
	f.mu.Lock()
	u, ok := f.registered[id]
	f.mu.Unlock()
	if ok {
		writeJSON(w, http.StatusOK, u)
		return
	}
	if id != UserID {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}
	serveFile(w, http.StatusOK, "user.json")
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UsernameOrEmail string `json:"username_or_email"`
		Password        string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	u := strings.ToLower(strings.TrimSpace(req.UsernameOrEmail))
	if u != Username && u != UserEmail {
		writeDetail(w, http.StatusNotFound, "No user found")
		return
	}
	if req.Password != UserPassword {
		writeDetail(w, http.StatusUnauthorized, "Incorrect password")
		return
	}
	serveFile(w, http.StatusOK, "user.json")
}

func (f *FakeGolfServer) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                 string `json:"name"`
		Username             string `json:"username"`
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	if req.Password != req.PasswordConfirmation {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"msg": "Value error, Passwords do not match"}]}`))
		return
	}
	if req.Username == Username || req.Username == TakenUsername {
		writeDetail(w, http.StatusConflict, "Username is already taken")
		return
	}

	u := map[string]any{
		"id":            RegisteredID,
		"name":          req.Name,
		"username":      req.Username,
		"email":         strings.ToLower(req.Email),
		"password_hash": "$2b$12$hash",
		"rounds":        []string{},
		"handicap_data": []any{},
	}
	f.mu.Lock()
	f.registered[RegisteredID] = u
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, u)
}

func usernameTakenHandler(w http.ResponseWriter, r *http.Request) {
	u := chi.URLParam(r, "username")
	if u == Username || u == TakenUsername {
		writeDetail(w, http.StatusConflict, "Username is already taken")
		return
	}
	writeDetail(w, http.StatusOK, "Username is available")
}

func emailTakenHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "email") == UserEmail {
		writeDetail(w, http.StatusConflict, "Email is already taken")
		return
	}
	writeDetail(w, http.StatusOK, "Email is available")
}

// autofillHandler starts every open hole at par, or 4 when par is unknown, and
// then moves open holes one stroke at a time, in hole order, until the target
// is reached.
func autofillHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scorecard map[string]struct {
			Score *int `json:"score"`
			Par   *int `json:"par"`
			Fixed bool `json:"fixed"`
		} `json:"scorecard"`
		TargetTotal int `json:"target_total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	scores := make(map[string]int, len(req.Scorecard))
	var open []int
	total := 0
	for k, h := range req.Scorecard {
		n, err := strconv.Atoi(k)
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("bad hole %s", k))
			return
		}
		if h.Par != nil && *h.Par <= 0 {
			writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("par of hole %s must be positive", k))
			return
		}
		switch {
		case h.Fixed && h.Score != nil:
			scores[k] = *h.Score
		case h.Par != nil:
			scores[k] = *h.Par
			open = append(open, n)
		default:
			scores[k] = 4
			open = append(open, n)
		}
		total += scores[k]
	}
	sort.Ints(open)

	for len(open) > 0 && total != req.TargetTotal {
		for _, n := range open {
			k := strconv.Itoa(n)
			if total < req.TargetTotal {
				scores[k]++
				total++
			} else if total > req.TargetTotal && scores[k] > 1 {
				scores[k]--
				total--
			}
		}
		if total > req.TargetTotal && allAtOne(scores, open) {
			break
		}
	}
	writeJSON(w, http.StatusOK, scores)
}

func allAtOne(scores map[string]int, holes []int) bool {
	for _, n := range holes {
		if scores[strconv.Itoa(n)] > 1 {
			return false
		}
	}
	return true
}

func readFile(name string, out any) error {
	b, err := golfdata.ReadFile(fmt.Sprintf("golfdata/%s", name))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func serveFile(w http.ResponseWriter, status int, name string) {
	b, err := golfdata.ReadFile(fmt.Sprintf("golfdata/%s", name))
	if err != nil {
		log.Printf("error reading golfdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	if detail == "" {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
