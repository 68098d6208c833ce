package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fittrack/exercise-tracker/internal/core/service"
	"github.com/fittrack/exercise-tracker/internal/infrastructure/db/memory"
)

// The router registers Prometheus collectors with the default registry, so it
// is built once and shared; tests keep their data disjoint via usernames.
var (
	serverOnce sync.Once
	server     *echo.Echo
)

func testServer(t *testing.T) *echo.Echo {
	t.Helper()
	serverOnce.Do(func() {
		log := zerolog.Nop()
		repo := memory.NewUserRepository()
		server = NewRouter(Deps{
			Users:     service.NewUserService(repo, nil, log),
			Exercises: service.NewExerciseService(repo, nil, log),
			Logger:    log,
		})
	})
	return server
}

func doForm(t *testing.T, e *echo.Echo, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doJSON(t *testing.T, e *echo.Echo, method, path, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response %q: %v", rec.Body.String(), err)
	}
	return out
}

func createUser(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec := doForm(t, e, http.MethodPost, "/users", url.Values{"username": {username}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user %q: expected 201, got %d (%s)", username, rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	id, _ := resp["id"].(string)
	if id == "" {
		t.Fatalf("create user %q: missing id in %v", username, resp)
	}
	return id
}

func addExercise(t *testing.T, e *echo.Echo, userID string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return doForm(t, e, http.MethodPost, "/users/"+userID+"/exercises", form)
}

// ---------------------------------------------------------------------------
// POST /users
// ---------------------------------------------------------------------------

func TestCreateUser_FormAndJSON(t *testing.T) {
	e := testServer(t)

	rec := doForm(t, e, http.MethodPost, "/users", url.Values{"username": {"router_form"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	if resp["username"] != "router_form" {
		t.Fatalf("unexpected payload: %v", resp)
	}

	rec = doJSON(t, e, http.MethodPost, "/users", `{"username":"router_json"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for json body, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestCreateUser_MissingUsername(t *testing.T) {
	e := testServer(t)

	rec := doForm(t, e, http.MethodPost, "/users", url.Values{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if _, ok := decode(t, rec)["error"]; !ok {
		t.Fatal("expected error envelope")
	}
}

func TestCreateUser_BlankUsername(t *testing.T) {
	e := testServer(t)

	rec := doForm(t, e, http.MethodPost, "/users", url.Values{"username": {"   "}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank username, got %d", rec.Code)
	}
}

func TestCreateUser_DuplicateCaseInsensitive(t *testing.T) {
	e := testServer(t)
	createUser(t, e, "Router_Dup")

	rec := doForm(t, e, http.MethodPost, "/users", url.Values{"username": {"ROUTER_DUP"}})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d (%s)", rec.Code, rec.Body.String())
	}

	// the store still contains exactly one user with that name
	list := doForm(t, e, http.MethodGet, "/users", nil)
	matches := 0
	var users []map[string]any
	if err := json.Unmarshal(list.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid listing: %v", err)
	}
	for _, u := range users {
		if name, _ := u["username"].(string); strings.EqualFold(name, "router_dup") {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one stored user, found %d", matches)
	}
}

// ---------------------------------------------------------------------------
// GET /users
// ---------------------------------------------------------------------------

func TestListUsers_Idempotent(t *testing.T) {
	e := testServer(t)
	createUser(t, e, "router_list")

	first := doForm(t, e, http.MethodGet, "/users", nil)
	second := doForm(t, e, http.MethodGet, "/users", nil)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200s, got %d and %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatal("listing must be stable with no intervening writes")
	}
}

// ---------------------------------------------------------------------------
// POST /users/:id/exercises
// ---------------------------------------------------------------------------

func TestAddExercise_Success(t *testing.T) {
	e := testServer(t)
	id := createUser(t, e, "router_add")

	rec := addExercise(t, e, id, url.Values{
		"description": {" run "},
		"duration":    {"30"},
		"date":        {"2024-06-04"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	resp := decode(t, rec)
	if resp["description"] != "run" {
		t.Fatalf("expected trimmed description, got %v", resp["description"])
	}
	if resp["duration"] != float64(30) {
		t.Fatalf("expected numeric duration 30, got %v", resp["duration"])
	}
	if resp["date"] != "Tue Jun 4 2024" {
		t.Fatalf("unexpected rendered date: %v", resp["date"])
	}
	if resp["id"] != id || resp["username"] != "router_add" {
		t.Fatalf("unexpected identity fields: %v", resp)
	}
}

func TestAddExercise_InvalidDuration(t *testing.T) {
	e := testServer(t)
	id := createUser(t, e, "router_baddur")

	for _, dur := range []string{"abc", "-5", "0"} {
		rec := addExercise(t, e, id, url.Values{"description": {"run"}, "duration": {dur}})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("duration %q: expected 400, got %d", dur, rec.Code)
		}
	}

	// the user's log is unchanged
	logs := doForm(t, e, http.MethodGet, "/users/"+id+"/logs", nil)
	if got := decode(t, logs)["count"]; got != float64(0) {
		t.Fatalf("expected count 0 after rejected appends, got %v", got)
	}
}

func TestAddExercise_JSONNumericDuration(t *testing.T) {
	e := testServer(t)
	id := createUser(t, e, "router_jsonnum")

	rec := doJSON(t, e, http.MethodPost, "/users/"+id+"/exercises",
		`{"description":"row","duration":20,"date":"2024-03-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for numeric json duration, got %d (%s)", rec.Code, rec.Body.String())
	}
	if resp := decode(t, rec); resp["duration"] != float64(20) {
		t.Fatalf("unexpected duration: %v", resp["duration"])
	}

	// invalid numeric values still get the specific duration message
	rec = doJSON(t, e, http.MethodPost, "/users/"+id+"/exercises",
		`{"description":"row","duration":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg, _ := decode(t, rec)["error"].(string); !strings.Contains(msg, "duration") {
		t.Fatalf("expected duration-specific error, got %q", msg)
	}
}

func TestAddExercise_MalformedID(t *testing.T) {
	e := testServer(t)

	rec := addExercise(t, e, "not-a-uuid", url.Values{"description": {"run"}, "duration": {"30"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}

func TestAddExercise_UserNotFound(t *testing.T) {
	e := testServer(t)

	rec := addExercise(t, e, uuid.NewString(), url.Values{"description": {"run"}, "duration": {"30"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestAddExercise_BadFieldReportedBeforeMissingUser(t *testing.T) {
	e := testServer(t)

	rec := addExercise(t, e, uuid.NewString(), url.Values{"description": {"run"}, "duration": {"abc"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("field validation is checked before existence: expected 400, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// GET /users/:id/logs
// ---------------------------------------------------------------------------

func seedLogUser(t *testing.T, e *echo.Echo, name string) string {
	t.Helper()
	id := createUser(t, e, name)
	for i, d := range []string{"2024-01-01", "2024-01-10", "2024-01-20"} {
		rec := addExercise(t, e, id, url.Values{
			"description": {fmt.Sprintf("entry-%d", i)},
			"duration":    {"30"},
			"date":        {d},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("seed append failed: %d (%s)", rec.Code, rec.Body.String())
		}
	}
	return id
}

func TestGetLog_FromFilter(t *testing.T) {
	e := testServer(t)
	id := seedLogUser(t, e, "router_from")

	rec := doForm(t, e, http.MethodGet, "/users/"+id+"/logs?from=2024-01-05", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["count"] != float64(2) {
		t.Fatalf("expected count 2, got %v", resp["count"])
	}
	log := resp["log"].([]any)
	if len(log) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(log))
	}
	first := log[0].(map[string]any)
	if first["date"] != "Wed Jan 10 2024" {
		t.Fatalf("expected ascending order starting at Jan 10, got %v", first["date"])
	}
}

func TestGetLog_ToFilterInclusive(t *testing.T) {
	e := testServer(t)
	id := seedLogUser(t, e, "router_to")

	rec := doForm(t, e, http.MethodGet, "/users/"+id+"/logs?to=2024-01-10", nil)
	resp := decode(t, rec)
	if resp["count"] != float64(2) {
		t.Fatalf("entry dated on the to day must be included, got count %v", resp["count"])
	}
}

func TestGetLog_LimitKeepsEarliest(t *testing.T) {
	e := testServer(t)
	id := seedLogUser(t, e, "router_limit")

	rec := doForm(t, e, http.MethodGet, "/users/"+id+"/logs?limit=1", nil)
	resp := decode(t, rec)
	log := resp["log"].([]any)
	if len(log) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(log))
	}
	if entry := log[0].(map[string]any); entry["date"] != "Mon Jan 1 2024" {
		t.Fatalf("expected the earliest entry, got %v", entry["date"])
	}
	// count still reports the pre-limit matches
	if resp["count"] != float64(3) {
		t.Fatalf("expected pre-limit count 3, got %v", resp["count"])
	}
}

func TestGetLog_BadDates(t *testing.T) {
	e := testServer(t)
	id := seedLogUser(t, e, "router_baddates")

	for _, q := range []string{"from=junk", "to=junk"} {
		rec := doForm(t, e, http.MethodGet, "/users/"+id+"/logs?"+q, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", q, rec.Code)
		}
	}
}

func TestGetLog_UserNotFound(t *testing.T) {
	e := testServer(t)

	rec := doForm(t, e, http.MethodGet, "/users/"+uuid.NewString()+"/logs?from=2024-01-01&limit=5", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 regardless of filters, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Probes
// ---------------------------------------------------------------------------

func TestHealth_Liveness(t *testing.T) {
	e := testServer(t)

	rec := doForm(t, e, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
