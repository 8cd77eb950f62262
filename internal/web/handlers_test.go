package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fairwaylabs/clubfit/internal/auth"
	"github.com/fairwaylabs/clubfit/internal/models"
	"github.com/fairwaylabs/clubfit/internal/storage"
	"github.com/fairwaylabs/clubfit/internal/storage/sqlite"
	"github.com/fairwaylabs/clubfit/pkg/logging"
)

// setupTestServer starts the full handler stack over a temp database.
// The returned client keeps cookies but does not follow redirects, so tests
// can assert on Location headers.
func setupTestServer(t *testing.T) (*httptest.Server, *http.Client, storage.Store) {
	t.Helper()
	logging.Setup()

	tempDir, err := os.MkdirTemp("", "clubfit-web-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewPasswordAuthenticator(store)
	sessions := auth.NewSessionManager("test-secret", time.Hour)
	server := httptest.NewServer(New(store, authenticator, sessions, slog.Default()).Handler())
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return server, client, store
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", target, err)
	}
	resp.Body.Close()
	return resp
}

func getBody(t *testing.T, client *http.Client, target string) string {
	t.Helper()
	resp, err := client.Get(target)
	if err != nil {
		t.Fatalf("GET %s failed: %v", target, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body failed: %v", err)
	}
	return string(body)
}

func wantRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func register(t *testing.T, client *http.Client, base, username, password string) {
	t.Helper()
	resp := postForm(t, client, base+"/register", url.Values{
		"username": {username},
		"password": {password},
	})
	wantRedirect(t, resp, "/login")
}

func login(t *testing.T, client *http.Client, base, username, password string) {
	t.Helper()
	resp := postForm(t, client, base+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	wantRedirect(t, resp, "/dashboard/getting-started")
}

func TestRegisterValidation(t *testing.T) {
	server, client, _ := setupTestServer(t)

	resp := postForm(t, client, server.URL+"/register", url.Values{
		"username": {"  "},
		"password": {"pw123"},
	})
	wantRedirect(t, resp, "/register")

	body := getBody(t, client, server.URL+"/register")
	if !strings.Contains(body, "Username and password are required.") {
		t.Error("expected validation notice on the register page")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	server, client, store := setupTestServer(t)
	register(t, client, server.URL, "alice", "pw123")

	resp := postForm(t, client, server.URL+"/register", url.Values{
		"username": {"alice"},
		"password": {"other"},
	})
	wantRedirect(t, resp, "/register")

	body := getBody(t, client, server.URL+"/register")
	if !strings.Contains(body, "User already exists.") {
		t.Error("expected duplicate notice on the register page")
	}

	user, err := store.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if user == nil {
		t.Fatal("expected the original record to survive")
	}
}

func TestLoginFailure(t *testing.T) {
	server, client, _ := setupTestServer(t)
	register(t, client, server.URL, "alice", "pw123")

	resp := postForm(t, client, server.URL+"/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	wantRedirect(t, resp, "/login")

	body := getBody(t, client, server.URL+"/login")
	if !strings.Contains(body, "Invalid username or password.") {
		t.Error("expected credential notice on the login page")
	}
}

func TestSessionGuard(t *testing.T) {
	server, client, _ := setupTestServer(t)

	resp, err := client.Get(server.URL + "/dashboard/getting-started")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	wantRedirect(t, resp, "/login")

	resp = postForm(t, client, server.URL+"/schedule", url.Values{
		"kind": {"swing"},
		"date": {"2024-06-01"},
		"time": {"10:00"},
	})
	wantRedirect(t, resp, "/login")
}

func TestUnknownDashboardSection(t *testing.T) {
	server, client, _ := setupTestServer(t)
	register(t, client, server.URL, "alice", "pw123")
	login(t, client, server.URL, "alice", "pw123")

	resp, err := client.Get(server.URL + "/dashboard/not-a-section")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	wantRedirect(t, resp, "/dashboard/getting-started")
}

func TestScheduleFlow(t *testing.T) {
	server, client, store := setupTestServer(t)
	register(t, client, server.URL, "alice", "pw123")
	login(t, client, server.URL, "alice", "pw123")

	t.Run("missing time redirects back without creating a row", func(t *testing.T) {
		resp := postForm(t, client, server.URL+"/schedule", url.Values{
			"kind": {"swing"},
			"date": {"2024-06-01"},
		})
		wantRedirect(t, resp, "/dashboard/schedule-swing")

		fittings, err := store.ListFittings(context.Background(), "alice")
		if err != nil {
			t.Fatalf("ListFittings failed: %v", err)
		}
		if len(fittings) != 0 {
			t.Fatalf("expected no fittings, got %d", len(fittings))
		}
	})

	t.Run("valid request is recorded with the initial status", func(t *testing.T) {
		resp := postForm(t, client, server.URL+"/schedule", url.Values{
			"kind":     {"swing"},
			"date":     {"2024-06-01"},
			"time":     {"10:00"},
			"comments": {"left knee"},
		})
		wantRedirect(t, resp, "/dashboard/fitting-progress")

		fittings, err := store.ListFittings(context.Background(), "alice")
		if err != nil {
			t.Fatalf("ListFittings failed: %v", err)
		}
		if len(fittings) != 1 {
			t.Fatalf("expected one fitting, got %d", len(fittings))
		}
		fitting := fittings[0]
		if fitting.ID <= 0 {
			t.Errorf("expected positive id, got %d", fitting.ID)
		}
		if fitting.Kind != models.KindSwing {
			t.Errorf("Kind = %q, want %q", fitting.Kind, models.KindSwing)
		}
		if fitting.ScheduledAt != "2024-06-01 10:00" {
			t.Errorf("ScheduledAt = %q, want %q", fitting.ScheduledAt, "2024-06-01 10:00")
		}
		if fitting.Status != models.StatusSubmitted {
			t.Errorf("Status = %q, want %q", fitting.Status, models.StatusSubmitted)
		}

		body := getBody(t, client, server.URL+"/dashboard/fitting-progress")
		if !strings.Contains(body, models.StatusSubmitted) {
			t.Error("expected the status on the progress page")
		}
		if !strings.Contains(body, "left knee") {
			t.Error("expected the comments on the progress page")
		}
	})
}

func TestProfileFlow(t *testing.T) {
	server, client, store := setupTestServer(t)
	register(t, client, server.URL, "alice", "pw123")
	login(t, client, server.URL, "alice", "pw123")

	resp := postForm(t, client, server.URL+"/profile", url.Values{
		"full_name": {"Alice Albatross"},
		"email":     {"alice@example.com"},
		"club_size": {"standard"},
	})
	wantRedirect(t, resp, "/dashboard/profile")

	profile, err := store.GetProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile == nil {
		t.Fatal("expected a saved profile")
	}
	if profile.FullName != "Alice Albatross" || profile.Email != "alice@example.com" {
		t.Errorf("profile did not round-trip: %+v", profile)
	}
	// fields left blank on the form stay blank, not merged from anywhere
	if profile.Address != "" || profile.Phone != "" {
		t.Errorf("unexpected values in blank fields: %+v", profile)
	}

	body := getBody(t, client, server.URL+"/dashboard/profile")
	if !strings.Contains(body, "Alice Albatross") {
		t.Error("expected saved values rendered into the profile form")
	}
}

func TestLogout(t *testing.T) {
	server, client, _ := setupTestServer(t)
	register(t, client, server.URL, "alice", "pw123")
	login(t, client, server.URL, "alice", "pw123")

	resp, err := client.Get(server.URL + "/logout")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	wantRedirect(t, resp, "/")

	resp, err = client.Get(server.URL + "/dashboard/getting-started")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	wantRedirect(t, resp, "/login")
}
