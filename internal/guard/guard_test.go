package guard

import (
	"testing"

	"github.com/FryoPie/Student-portal/internal/models"
)

// fakeAuth is a canned session state for exercising the guard without a
// real auth controller.
type fakeAuth struct {
	authenticated bool
	user          models.User
}

func (f fakeAuth) IsAuthenticated() bool { return f.authenticated }

func (f fakeAuth) CurrentUser() (models.User, bool) {
	return f.user, f.authenticated
}

func anonymous() fakeAuth { return fakeAuth{} }

func student() fakeAuth {
	return fakeAuth{authenticated: true, user: models.User{ID: 1, Role: models.RoleStudent}}
}

func coordinator() fakeAuth {
	return fakeAuth{authenticated: true, user: models.User{ID: 2, Role: models.RoleCoordinator}}
}

func TestEvaluate_PublicRoutes(t *testing.T) {
	for _, path := range []string{"/", "/login", "/register", "/profile/42"} {
		t.Run(path, func(t *testing.T) {
			for name, auth := range map[string]fakeAuth{
				"anonymous":   anonymous(),
				"student":     student(),
				"coordinator": coordinator(),
			} {
				d := New(auth).Evaluate(path)
				if d.State != Permitted {
					t.Errorf("%s visiting %s: state = %v, want Permitted", name, path, d.State)
				}
			}
		})
	}
}

func TestEvaluate_ProtectedRoutesRequireLogin(t *testing.T) {
	g := New(anonymous())
	for _, path := range []string{"/dashboard", "/profile", "/achievements", "/coordinator"} {
		t.Run(path, func(t *testing.T) {
			d := g.Evaluate(path)
			if d.State != Redirected {
				t.Fatalf("state = %v, want Redirected", d.State)
			}
			if d.Target != "/login" {
				t.Errorf("target = %q, want /login", d.Target)
			}
		})
	}
}

func TestEvaluate_RoleRestrictions(t *testing.T) {
	t.Run("student blocked from coordinator dashboard", func(t *testing.T) {
		d := New(student()).Evaluate("/coordinator")
		if d.State != Redirected {
			t.Fatalf("state = %v, want Redirected", d.State)
		}
		if d.Target != "/dashboard" {
			t.Errorf("target = %q, want /dashboard", d.Target)
		}
	})

	t.Run("coordinator permitted on coordinator dashboard", func(t *testing.T) {
		d := New(coordinator()).Evaluate("/coordinator")
		if d.State != Permitted {
			t.Errorf("state = %v, want Permitted", d.State)
		}
	})

	t.Run("student permitted on own pages", func(t *testing.T) {
		g := New(student())
		for _, path := range []string{"/dashboard", "/profile", "/achievements"} {
			if d := g.Evaluate(path); d.State != Permitted {
				t.Errorf("%s: state = %v, want Permitted", path, d.State)
			}
		}
	})

	t.Run("coordinator permitted on shared protected pages", func(t *testing.T) {
		g := New(coordinator())
		for _, path := range []string{"/dashboard", "/profile", "/achievements"} {
			if d := g.Evaluate(path); d.State != Permitted {
				t.Errorf("%s: state = %v, want Permitted", path, d.State)
			}
		}
	})
}

func TestEvaluate_ReflectsSessionChanges(t *testing.T) {
	// Decisions are recomputed per navigation, so the same guard must track
	// a session that logs in and out underneath it.
	state := &struct{ fakeAuth }{}
	g := New(state)

	if d := g.Evaluate("/dashboard"); d.State != Redirected || d.Target != "/login" {
		t.Fatalf("logged out: got %+v, want redirect to /login", d)
	}

	state.fakeAuth = student()
	if d := g.Evaluate("/dashboard"); d.State != Permitted {
		t.Fatalf("after login: got %+v, want Permitted", d)
	}

	state.fakeAuth = anonymous()
	if d := g.Evaluate("/dashboard"); d.State != Redirected || d.Target != "/login" {
		t.Fatalf("after logout: got %+v, want redirect to /login", d)
	}
}

func TestEvaluate_PathNormalization(t *testing.T) {
	g := New(student())

	t.Run("trailing slash", func(t *testing.T) {
		if d := g.Evaluate("/dashboard/"); d.State != Permitted {
			t.Errorf("got %+v, want Permitted", d)
		}
	})

	t.Run("public profile with identifier", func(t *testing.T) {
		if d := g.Evaluate("/profile/17/"); d.State != Permitted {
			t.Errorf("got %+v, want Permitted", d)
		}
	})

	t.Run("unknown path falls through to landing page", func(t *testing.T) {
		d := g.Evaluate("/admin")
		if d.State != Redirected || d.Target != "/" {
			t.Errorf("got %+v, want redirect to /", d)
		}
	})
}

func TestHome(t *testing.T) {
	if got := Home(models.RoleCoordinator); got != "/coordinator" {
		t.Errorf("coordinator home = %q, want /coordinator", got)
	}
	if got := Home(models.RoleStudent); got != "/dashboard" {
		t.Errorf("student home = %q, want /dashboard", got)
	}
}
