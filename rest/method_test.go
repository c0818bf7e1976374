package rest_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/internal/testutil"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource/testing/mem"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/rest"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/tracker"
)

// requestTest is a reusable type for testing GET requests. Best used in a map,
// E.g.:
//
//	tests := map[string]requestTest{
//		"users": {Init: newTrackerVars, NewRequest: ..., ResponseCode: 200},
//	}
//	for n, tc := range tests {
//		tc := tc
//		t.Run(n, tc.Test)
//	}
type requestTest struct {
	Init           func() *requestTestVars
	NewRequest     func() (*http.Request, error)
	ResponseCode   int
	ResponseHeader http.Header // Only checks provided headers, not that all headers are equal.
	ResponseBody   string
	ExtraTest      requestCheckerFunc
}

type requestCheckerFunc func(*testing.T, *requestTestVars)

// requestTestVars provides test runtime variables.
type requestTestVars struct {
	Index   resource.Index             // required
	Storers map[string]*countingStorer // optional: may be used by ExtraTest function
}

// Test runs tt in parallel mode. It can be passed as a second parameter to
// Run(name, f) for the *testing.T type.
func (tt *requestTest) Test(t *testing.T) {
	t.Parallel()
	vars := tt.Init()
	h, err := rest.NewHandler(vars.Index)
	if err != nil {
		t.Errorf("rest.NewHandler failed: %s", err)
		return
	}
	r, err := tt.NewRequest()
	if err != nil || r == nil {
		t.Errorf("tt.NewRequest failed: %s", err)
		return
	}
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)
	if tt.ResponseCode != w.Code {
		t.Errorf("Expected HTTP response code %d, got %d", tt.ResponseCode, w.Code)
	}
	header := w.Header()
	for k, evs := range tt.ResponseHeader {
		if eCnt, aCnt := len(evs), len(header[k]); eCnt != aCnt {
			t.Errorf("expected HTTP Header %q to have %d items, got %d items", k, eCnt, aCnt)
			continue
		}
		for i, ev := range evs {
			if av := header[k][i]; ev != av {
				t.Errorf("Expected HTTP header[%q][%d] to equal %q, got %q", k, i, ev, av)
			}
		}

	}
	b, _ := io.ReadAll(w.Body)
	if len(tt.ResponseBody) > 0 {
		testutil.JSONEq(t, []byte(tt.ResponseBody), b)
	} else if len(b) > 0 {
		t.Errorf("Expected empty response body, got:\n%s", b)
	}

	if tt.ExtraTest != nil {
		tt.ExtraTest(t, vars)
	}
}

func get(target string) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, target, nil)
	}
}

// countingStorer counts the Find calls reaching a storer.
type countingStorer struct {
	resource.Storer
	mu    sync.Mutex
	finds int
	err   error
}

func (s *countingStorer) Find(ctx context.Context, p *resource.Plan) (*resource.ItemList, error) {
	s.mu.Lock()
	s.finds++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.Storer.Find(ctx, p)
}

func (s *countingStorer) Finds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finds
}

var dataset = tracker.Dataset{
	tracker.Teams: {
		{"id": 1, "name": "Core"},
		{"id": 2, "name": "Platform"},
	},
	tracker.Users: {
		{"id": 1, "name": "Pepeto", "lastname": "Brown", "team_id": 1},
		{"id": 2, "name": "Pepeto", "lastname": "Gonzalez", "team_id": 1},
		{"id": 3, "name": "Luis", "lastname": "Candelario", "team_id": 2},
		{"id": 4, "name": "Luis", "lastname": "Candelario Gonzalez", "team_id": 2},
		{"id": 5, "name": "Luis", "lastname": "De Sousa", "team_id": nil},
		{"id": 6, "name": "Luis", "lastname": "Jardin", "team_id": 1},
	},
	tracker.Projects: {
		{"id": 1, "jira_project_id": 10000, "jira_project_key": "TEMPO", "name": "Tempo Sync"},
	},
	tracker.Issues: {
		{"id": 1, "jira_issue_id": 123, "jira_issue_key": "TEMPO-1", "status": "Awaiting Development", "jira_project_id": 10000},
		{"id": 2, "jira_issue_id": 500, "jira_issue_key": "TEMPO-2", "status": "Awaiting Test", "jira_project_id": 10000},
		{"id": 3, "jira_issue_id": 690, "jira_issue_key": "TEMPO-3", "status": "Closed", "jira_project_id": 10000},
		{"id": 4, "jira_issue_id": 830, "jira_issue_key": "TEMPO-4", "status": "Open", "jira_project_id": 10000},
		{"id": 5, "jira_issue_id": 12, "jira_issue_key": "TEMPO-5", "status": "Open", "jira_project_id": 10000},
		{"id": 6, "jira_issue_id": 72, "jira_issue_key": "TEMPO-6", "status": "", "jira_project_id": 10000},
	},
	tracker.TimeEntries: {
		{"id": 1, "jira_issue_id": 123, "user_id": 1, "date": "2024-03-01", "time_spent_seconds": 3600},
		{"id": 2, "jira_issue_id": 690, "user_id": 1, "date": "2024-03-02", "time_spent_seconds": 1800},
	},
}

// newTrackerVars returns the tracker catalog seeded with dataset over in
// memory storers.
func newTrackerVars() *requestTestVars {
	vars := &requestTestVars{Storers: map[string]*countingStorer{}}
	storers := map[string]resource.Storer{}
	for _, name := range tracker.Names {
		s := &countingStorer{Storer: mem.NewHandler()}
		vars.Storers[name] = s
		storers[name] = s
	}
	if err := tracker.Seed(context.Background(), seedStorers(vars.Storers), dataset); err != nil {
		panic(err)
	}
	vars.Index = resource.NewIndex()
	tracker.Register(vars.Index, storers, resource.DefaultConf)
	return vars
}

func seedStorers(storers map[string]*countingStorer) map[string]resource.Storer {
	out := map[string]resource.Storer{}
	for name, s := range storers {
		out[name] = s.Storer
	}
	return out
}
