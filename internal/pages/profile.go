package pages

import (
	"context"
	"fmt"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/models"
)

// ProfileForm carries the fields the owner may change. Picture is optional.
type ProfileForm struct {
	Bio         string
	Department  string
	Year        string
	CGPA        string
	Phone       string
	LinkedinURL string
	GithubURL   string
	Picture     *api.FilePart
}

type ProfilePage struct {
	client *api.Client

	Profile models.StudentProfile
	Loaded  bool
	Loading bool
	Err     string
	Success string
}

func NewProfilePage(client *api.Client) *ProfilePage {
	return &ProfilePage{client: client}
}

func (p *ProfilePage) Refresh(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	var profile models.StudentProfile
	if err := p.client.GetJSON(ctx, "/profiles/me/", &profile); err != nil {
		p.Err = "Failed to fetch profile"
		return err
	}
	p.Profile = profile
	p.Loaded = true
	p.Err = ""
	return nil
}

// Update patches the profile's editable fields and re-fetches the record.
// The profile must have been loaded first so its identifier is known.
func (p *ProfilePage) Update(ctx context.Context, form ProfileForm) error {
	p.Err = ""
	p.Success = ""

	if !p.Loaded {
		err := api.NewValidationError("Profile not loaded yet")
		p.Err = err.Error()
		return err
	}

	fields := map[string]string{}
	put := func(key, val string) {
		if val != "" {
			fields[key] = val
		}
	}
	put("bio", form.Bio)
	put("department", form.Department)
	put("year", form.Year)
	put("cgpa", form.CGPA)
	put("phone", form.Phone)
	put("linkedin_url", form.LinkedinURL)
	put("github_url", form.GithubURL)

	path := fmt.Sprintf("/profiles/%d/", p.Profile.ID)
	if err := p.client.PatchMultipart(ctx, path, fields, form.Picture, nil); err != nil {
		p.Err = "Failed to update profile"
		return err
	}
	p.Success = "Profile updated successfully!"
	return p.Refresh(ctx)
}
