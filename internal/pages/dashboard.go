// Package pages holds the page controllers. Each follows the same
// lifecycle: Refresh fetches the page's resources, Loading is true while a
// request is in flight, a failure sets a non-fatal inline error and leaves
// prior data intact, and every mutation re-fetches the collection it touched.
package pages

import (
	"context"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/models"
)

// DashboardStats are the counters shown on the student dashboard, derived
// client-side from the student's own achievement list.
type DashboardStats struct {
	Total    int
	Verified int
	Pending  int
	Rejected int
}

type DashboardPage struct {
	client *api.Client

	Stats   DashboardStats
	Loading bool
	Err     string
}

func NewDashboardPage(client *api.Client) *DashboardPage {
	return &DashboardPage{client: client}
}

func (p *DashboardPage) Refresh(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	var achievements []models.Achievement
	if err := p.client.GetJSON(ctx, "/achievements/list/my_achievements/", &achievements); err != nil {
		p.Err = "Failed to fetch stats"
		return err
	}

	stats := DashboardStats{Total: len(achievements)}
	for _, a := range achievements {
		switch a.Status {
		case models.StatusVerified:
			stats.Verified++
		case models.StatusPending:
			stats.Pending++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	p.Stats = stats
	p.Err = ""
	return nil
}
