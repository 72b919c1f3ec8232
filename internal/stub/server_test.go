package stub_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FryoPie/Student-portal/internal/config"
	"github.com/FryoPie/Student-portal/internal/models"
	"github.com/FryoPie/Student-portal/internal/stub"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := stub.NewServer(&config.StubConfig{JWTSecret: "test-secret", Environment: "test"}, logger)
	if err != nil {
		t.Fatalf("start stub: %v", err)
	}
	t.Cleanup(srv.Close)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s: %v", path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func getJSON(t *testing.T, ts *httptest.Server, path, token string, out interface{}) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s: %v", path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if out != nil && resp.StatusCode < 300 {
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("decode %s: %v (body %s)", path, err, data)
		}
	}
	return resp
}

// newMultipart writes a form body into buf and returns its content type.
func newMultipart(buf *bytes.Buffer, fields map[string]string) string {
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	_ = w.Close()
	return w.FormDataContentType()
}

// register creates an account and returns its access token and user record.
func register(t *testing.T, ts *httptest.Server, studentID, role string) (string, models.User) {
	t.Helper()
	resp, body := postJSON(t, ts, "/api/auth/register/", "", map[string]string{
		"student_id": studentID,
		"email":      strings.ToLower(studentID) + "@example.com",
		"password":   "sup3rsecret",
		"role":       role,
		"first_name": "Test",
		"last_name":  "User",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", studentID, resp.StatusCode, body)
	}

	resp, body = postJSON(t, ts, "/api/auth/login/", "", map[string]string{
		"student_id": studentID,
		"password":   "sup3rsecret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", studentID, resp.StatusCode, body)
	}
	var login struct {
		Access  string      `json:"access"`
		Refresh string      `json:"refresh"`
		User    models.User `json:"user"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.Access == "" || login.Refresh == "" {
		t.Fatal("login response missing tokens")
	}
	return login.Access, login.User
}

func submitAchievement(t *testing.T, ts *httptest.Server, token, title string) models.Achievement {
	t.Helper()
	var buf bytes.Buffer
	w := newMultipart(&buf, map[string]string{
		"title":       title,
		"description": "Details.",
		"category":    "technical",
	})
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/achievements/list/", &buf)
	req.Header.Set("Content-Type", w)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: status %d, body %s", resp.StatusCode, body)
	}
	var created models.Achievement
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode achievement: %v", err)
	}
	return created
}

func TestServer_ReviewWorkflow(t *testing.T) {
	ts := newServer(t)

	coordToken, _ := register(t, ts, "COORD01", "coordinator")
	studentToken, student := register(t, ts, "2024CS001", "student")

	created := submitAchievement(t, ts, studentToken, "Hackathon Winner")
	if created.Status != models.StatusPending {
		t.Fatalf("status = %q, want pending", created.Status)
	}
	if created.Student != student.ID {
		t.Fatalf("student = %d, want %d", created.Student, student.ID)
	}

	t.Run("pending list is coordinator-only", func(t *testing.T) {
		if resp := getJSON(t, ts, "/api/achievements/list/pending/", studentToken, nil); resp.StatusCode != http.StatusForbidden {
			t.Errorf("student got status %d, want 403", resp.StatusCode)
		}
		var pending []models.Achievement
		if resp := getJSON(t, ts, "/api/achievements/list/pending/", coordToken, &pending); resp.StatusCode != http.StatusOK {
			t.Fatalf("coordinator got status %d", resp.StatusCode)
		}
		if len(pending) != 1 || pending[0].ID != created.ID {
			t.Errorf("pending = %+v, want the one submission", pending)
		}
	})

	t.Run("reject with notes", func(t *testing.T) {
		path := fmt.Sprintf("/api/achievements/list/%d/verify/", created.ID)
		resp, body := postJSON(t, ts, path, coordToken, map[string]string{
			"status":             "rejected",
			"verification_notes": "missing proof",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("verify: status %d, body %s", resp.StatusCode, body)
		}
		var updated models.Achievement
		if err := json.Unmarshal(body, &updated); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if updated.Status != models.StatusRejected {
			t.Errorf("status = %q, want rejected", updated.Status)
		}
		if updated.VerificationNotes != "missing proof" {
			t.Errorf("notes = %q", updated.VerificationNotes)
		}

		var pending []models.Achievement
		getJSON(t, ts, "/api/achievements/list/pending/", coordToken, &pending)
		if len(pending) != 0 {
			t.Errorf("pending = %d records after the decision, want 0", len(pending))
		}
	})

	t.Run("decision creates the student's notification synchronously", func(t *testing.T) {
		var list []models.Notification
		getJSON(t, ts, "/api/achievements/notifications/", studentToken, &list)
		if len(list) != 1 {
			t.Fatalf("len = %d, want 1", len(list))
		}
		want := `Your achievement "Hackathon Winner" has been rejected. Note: missing proof`
		if list[0].Message != want {
			t.Errorf("message = %q, want %q", list[0].Message, want)
		}
	})

	t.Run("rejected record can no longer be edited or deleted", func(t *testing.T) {
		var buf bytes.Buffer
		w := newMultipart(&buf, map[string]string{
			"title":       "Second Try",
			"description": "Details.",
			"category":    "technical",
		})
		req, _ := http.NewRequest(http.MethodPatch, fmt.Sprintf("%s/api/achievements/list/%d/", ts.URL, created.ID), &buf)
		req.Header.Set("Content-Type", w)
		req.Header.Set("Authorization", "Bearer "+studentToken)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("edit: status %d, want 403", resp.StatusCode)
		}

		del, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/achievements/list/%d/", ts.URL, created.ID), nil)
		del.Header.Set("Authorization", "Bearer "+studentToken)
		resp, err = http.DefaultClient.Do(del)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("delete: status %d, want 403", resp.StatusCode)
		}
	})
}

func TestServer_AuthRejections(t *testing.T) {
	ts := newServer(t)
	_, refresh := registerWithRefresh(t, ts, "2024CS002")

	t.Run("missing credential", func(t *testing.T) {
		resp := getJSON(t, ts, "/api/achievements/list/my_achievements/", "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := getJSON(t, ts, "/api/achievements/list/my_achievements/", "garbage", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("refresh token is not an access credential", func(t *testing.T) {
		resp := getJSON(t, ts, "/api/achievements/list/my_achievements/", refresh, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, body := postJSON(t, ts, "/api/auth/login/", "", map[string]string{
			"student_id": "2024CS002",
			"password":   "wrong-password",
		})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
		var payload map[string]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload["detail"] != "No active account found with the given credentials" {
			t.Errorf("detail = %q", payload["detail"])
		}
	})
}

func TestServer_RegisterDuplicates(t *testing.T) {
	ts := newServer(t)
	register(t, ts, "2024CS003", "student")

	t.Run("duplicate roll number", func(t *testing.T) {
		resp, body := postJSON(t, ts, "/api/auth/register/", "", map[string]string{
			"student_id": "2024CS003",
			"email":      "else@example.com",
			"password":   "sup3rsecret",
			"role":       "student",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		var payload map[string][]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got := payload["student_id"]; len(got) != 1 || got[0] != "A user with that roll number already exists." {
			t.Errorf("student_id errors = %v", got)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp, body := postJSON(t, ts, "/api/auth/register/", "", map[string]string{
			"student_id": "2024CS004",
			"email":      "2024cs003@example.com",
			"password":   "sup3rsecret",
			"role":       "student",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		var payload map[string][]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := payload["email"]; !ok {
			t.Errorf("payload = %s, want an email field error", body)
		}
	})
}

func TestServer_RefreshAndLogout(t *testing.T) {
	ts := newServer(t)
	access, refresh := registerWithRefresh(t, ts, "2024CS005")

	t.Run("refresh mints a working access token", func(t *testing.T) {
		resp, body := postJSON(t, ts, "/api/auth/refresh/", "", map[string]string{"refresh": refresh})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("refresh: status %d, body %s", resp.StatusCode, body)
		}
		var payload struct {
			Access string `json:"access"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload.Access == "" {
			t.Fatal("refresh response missing access token")
		}
		if resp := getJSON(t, ts, "/api/achievements/list/my_achievements/", payload.Access, nil); resp.StatusCode != http.StatusOK {
			t.Errorf("minted token rejected: status %d", resp.StatusCode)
		}
	})

	t.Run("access token is not a refresh credential", func(t *testing.T) {
		resp, _ := postJSON(t, ts, "/api/auth/refresh/", "", map[string]string{"refresh": access})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("logout revokes the refresh token", func(t *testing.T) {
		resp, body := postJSON(t, ts, "/api/auth/logout/", "", map[string]string{"refresh": refresh})
		if resp.StatusCode != http.StatusResetContent {
			t.Fatalf("logout: status %d, body %s", resp.StatusCode, body)
		}

		resp, body = postJSON(t, ts, "/api/auth/refresh/", "", map[string]string{"refresh": refresh})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("refresh after logout: status %d, body %s", resp.StatusCode, body)
		}
		var payload map[string]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload["detail"] != "Token is invalid or expired" {
			t.Errorf("detail = %q", payload["detail"])
		}
	})

	t.Run("garbage refresh token", func(t *testing.T) {
		resp, _ := postJSON(t, ts, "/api/auth/refresh/", "", map[string]string{"refresh": "not.a.token"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("missing refresh field", func(t *testing.T) {
		resp, body := postJSON(t, ts, "/api/auth/refresh/", "", map[string]string{})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400, body %s", resp.StatusCode, body)
		}
		var payload map[string][]string
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := payload["refresh"]; !ok {
			t.Errorf("payload = %s, want a refresh field error", body)
		}
	})
}

// registerWithRefresh registers a student and returns both tokens from the
// subsequent login.
func registerWithRefresh(t *testing.T, ts *httptest.Server, studentID string) (string, string) {
	t.Helper()
	resp, body := postJSON(t, ts, "/api/auth/register/", "", map[string]string{
		"student_id": studentID,
		"email":      strings.ToLower(studentID) + "@example.com",
		"password":   "sup3rsecret",
		"role":       "student",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", resp.StatusCode, body)
	}
	resp, body = postJSON(t, ts, "/api/auth/login/", "", map[string]string{
		"student_id": studentID,
		"password":   "sup3rsecret",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d, body %s", resp.StatusCode, body)
	}
	var login struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return login.Access, login.Refresh
}
