package pages_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/FryoPie/Student-portal/internal/models"
	"github.com/FryoPie/Student-portal/internal/pages"
)

func TestDashboardPage_StatsFromOwnAchievements(t *testing.T) {
	e := newTestEnv(t)
	student := e.newActor(t, "2024CS301", models.RoleStudent)
	coordinator := e.newActor(t, "COORD03", models.RoleCoordinator)
	ctx := context.Background()

	achievementsPage := pages.NewAchievementsPage(student.client)
	for i := 0; i < 3; i++ {
		if err := achievementsPage.Submit(ctx, pages.AchievementForm{
			Title:       fmt.Sprintf("Achievement %d", i+1),
			Description: "Details.",
			Category:    models.CategoryAcademic,
		}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	coordPage := pages.NewCoordinatorPage(coordinator.client)
	if err := coordPage.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(coordPage.Pending) != 3 {
		t.Fatalf("pending = %d, want 3", len(coordPage.Pending))
	}
	if err := coordPage.Verify(ctx, coordPage.Pending[0].ID, models.StatusVerified, ""); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if err := coordPage.Verify(ctx, coordPage.Pending[1].ID, models.StatusRejected, "missing proof"); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	dashboard := pages.NewDashboardPage(student.client)
	if err := dashboard.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	want := pages.DashboardStats{Total: 3, Verified: 1, Pending: 1, Rejected: 1}
	if dashboard.Stats != want {
		t.Errorf("stats = %+v, want %+v", dashboard.Stats, want)
	}
}

func TestDashboardPage_RefreshFailureKeepsStats(t *testing.T) {
	e := newTestEnv(t)
	student := e.newActor(t, "2024CS302", models.RoleStudent)
	ctx := context.Background()

	dashboard := pages.NewDashboardPage(student.client)
	if err := dashboard.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	student.client.ClearToken()
	if err := dashboard.Refresh(ctx); err == nil {
		t.Fatal("expected Refresh to fail without a credential")
	}
	if dashboard.Err != "Failed to fetch stats" {
		t.Errorf("dashboard.Err = %q", dashboard.Err)
	}
	if dashboard.Loading {
		t.Error("Loading still true after a failed refresh")
	}
}
