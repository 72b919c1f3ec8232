package pages

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/models"
)

// PublicProfilePage shows any student's profile together with their verified
// achievements. Both resources are fetched concurrently; either failure is
// surfaced inline without discarding the other result.
type PublicProfilePage struct {
	client *api.Client

	ID           string
	Profile      models.StudentProfile
	Achievements []models.Achievement
	Loading      bool
	Err          string
}

func NewPublicProfilePage(client *api.Client, id string) *PublicProfilePage {
	return &PublicProfilePage{client: client, ID: id}
}

func (p *PublicProfilePage) Refresh(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	var (
		profile      models.StudentProfile
		achievements []models.Achievement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.client.GetJSON(gctx, fmt.Sprintf("/profiles/%s/", p.ID), &profile)
	})
	g.Go(func() error {
		path := fmt.Sprintf("/achievements/list/?student_id=%s&status=verified", p.ID)
		return p.client.GetJSON(gctx, path, &achievements)
	})

	if err := g.Wait(); err != nil {
		if api.IsNotFound(err) {
			p.Err = "Profile not found"
		} else {
			p.Err = "Failed to load profile"
		}
		return err
	}

	p.Profile = profile
	p.Achievements = achievements
	p.Err = ""
	return nil
}
