package pages

import (
	"context"
	"fmt"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/models"
)

// AchievementForm is the submission state for creating or editing an
// achievement. Proof is optional.
type AchievementForm struct {
	Title           string
	Description     string
	Category        models.AchievementCategory
	AchievementDate string
	Proof           *api.FilePart
}

type AchievementsPage struct {
	client *api.Client

	Achievements []models.Achievement
	Loading      bool
	Err          string
	Success      string
}

func NewAchievementsPage(client *api.Client) *AchievementsPage {
	return &AchievementsPage{client: client}
}

func (p *AchievementsPage) Refresh(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	var list []models.Achievement
	if err := p.client.GetJSON(ctx, "/achievements/list/my_achievements/", &list); err != nil {
		p.Err = "Failed to fetch achievements"
		return err
	}
	p.Achievements = list
	p.Err = ""
	return nil
}

// Submit creates a new achievement. An empty title or description blocks the
// submission before any network call.
func (p *AchievementsPage) Submit(ctx context.Context, form AchievementForm) error {
	p.clearBanners()

	if form.Title == "" || form.Description == "" {
		err := api.NewValidationError("Title and description are required")
		p.Err = err.Error()
		return err
	}

	fields := form.fields()
	fields["status"] = string(models.StatusPending)
	if err := p.client.PostMultipart(ctx, "/achievements/list/", fields, form.Proof, nil); err != nil {
		p.Err = "Failed to save achievement. Please try again."
		return err
	}
	p.Success = "Achievement submitted successfully!"
	return p.Refresh(ctx)
}

// Edit updates an existing achievement. The remote service only accepts the
// change while the record is still pending.
func (p *AchievementsPage) Edit(ctx context.Context, id int64, form AchievementForm) error {
	p.clearBanners()

	if form.Title == "" || form.Description == "" {
		err := api.NewValidationError("Title and description are required")
		p.Err = err.Error()
		return err
	}

	path := fmt.Sprintf("/achievements/list/%d/", id)
	if err := p.client.PatchMultipart(ctx, path, form.fields(), form.Proof, nil); err != nil {
		p.Err = "Failed to save achievement. Please try again."
		return err
	}
	p.Success = "Achievement updated successfully!"
	return p.Refresh(ctx)
}

func (p *AchievementsPage) Delete(ctx context.Context, id int64) error {
	p.clearBanners()

	if err := p.client.Delete(ctx, fmt.Sprintf("/achievements/list/%d/", id)); err != nil {
		p.Err = "Failed to delete achievement"
		return err
	}
	p.Success = "Achievement deleted successfully!"
	return p.Refresh(ctx)
}

func (p *AchievementsPage) clearBanners() {
	p.Err = ""
	p.Success = ""
}

func (f AchievementForm) fields() map[string]string {
	fields := map[string]string{
		"title":       f.Title,
		"description": f.Description,
		"category":    string(f.Category),
	}
	if f.AchievementDate != "" {
		fields["achievement_date"] = f.AchievementDate
	}
	return fields
}
