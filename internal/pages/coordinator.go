package pages

import (
	"context"
	"fmt"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/models"
	"github.com/FryoPie/Student-portal/internal/validator"
)

// CoordinatorPage lists achievements awaiting review and applies verify
// decisions. Reachable only through the coordinator-gated route.
type CoordinatorPage struct {
	client *api.Client

	Pending []models.Achievement
	Loading bool
	Err     string
	Success string
}

func NewCoordinatorPage(client *api.Client) *CoordinatorPage {
	return &CoordinatorPage{client: client}
}

func (p *CoordinatorPage) Refresh(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	var list []models.Achievement
	if err := p.client.GetJSON(ctx, "/achievements/list/pending/", &list); err != nil {
		p.Err = "Failed to fetch achievements"
		return err
	}
	p.Pending = list
	p.Err = ""
	return nil
}

// Verify sets an achievement to verified or rejected and re-fetches the
// pending list, from which the record then disappears.
func (p *CoordinatorPage) Verify(ctx context.Context, id int64, status models.AchievementStatus, notes string) error {
	p.Err = ""
	p.Success = ""

	if status != models.StatusVerified && status != models.StatusRejected {
		err := api.NewValidationError("Status must be verified or rejected")
		p.Err = err.Error()
		return err
	}

	body := validator.VerifyRequest{Status: string(status), VerificationNotes: notes}
	path := fmt.Sprintf("/achievements/list/%d/verify/", id)
	if err := p.client.PostJSON(ctx, path, body, nil); err != nil {
		p.Err = "Failed to update achievement status"
		return err
	}

	p.Success = fmt.Sprintf("Achievement %s successfully!", status)
	return p.Refresh(ctx)
}
