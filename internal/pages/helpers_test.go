package pages_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/auth"
	"github.com/FryoPie/Student-portal/internal/config"
	"github.com/FryoPie/Student-portal/internal/models"
	"github.com/FryoPie/Student-portal/internal/session"
	"github.com/FryoPie/Student-portal/internal/validator"

	"github.com/FryoPie/Student-portal/internal/stub"
)

// testEnv is one in-process copy of the remote service, shared by however
// many actors a test needs. The request counter sits in front of the stub so
// tests can assert that pre-flight validation issues no network call.
type testEnv struct {
	url      string
	logger   *slog.Logger
	requests atomic.Int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	srv, err := stub.NewServer(&config.StubConfig{JWTSecret: "test-secret", Environment: "test"}, e.logger)
	if err != nil {
		t.Fatalf("start stub: %v", err)
	}
	t.Cleanup(srv.Close)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.requests.Add(1)
		srv.Handler().ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	e.url = ts.URL + "/api"
	return e
}

// actor is one logged-in session against the shared environment. Separate
// actors hold separate clients, so a student and a coordinator can act in the
// same test.
type actor struct {
	client *api.Client
	auth   *auth.Controller
	user   models.User
}

func (e *testEnv) newActor(t *testing.T, studentID string, role models.Role) *actor {
	t.Helper()
	client := api.NewClient(e.url, e.logger)
	store := session.NewStore(t.TempDir(), e.logger)
	controller := auth.NewController(store, client, validator.New(), e.logger)

	user, err := controller.Register(context.Background(), validator.RegisterRequest{
		StudentID:       studentID,
		Email:           strings.ToLower(studentID) + "@example.com",
		Password:        "sup3rsecret",
		ConfirmPassword: "sup3rsecret",
		Role:            string(role),
		FirstName:       "Test",
		LastName:        "User",
	})
	if err != nil {
		t.Fatalf("register %s: %v", studentID, err)
	}
	return &actor{client: client, auth: controller, user: *user}
}
