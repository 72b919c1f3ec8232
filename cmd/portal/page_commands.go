package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/export"
	"github.com/FryoPie/Student-portal/internal/models"
	"github.com/FryoPie/Student-portal/internal/pages"
)

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your achievement counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.navigate("/dashboard"); err != nil {
				return err
			}
			page := pages.NewDashboardPage(a.client)
			if err := page.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			user, _ := a.auth.CurrentUser()
			fmt.Printf("Welcome, %s!\n", user.DisplayName())
			fmt.Printf("  Total:    %d\n", page.Stats.Total)
			fmt.Printf("  Verified: %d\n", page.Stats.Verified)
			fmt.Printf("  Pending:  %d\n", page.Stats.Pending)
			fmt.Printf("  Rejected: %d\n", page.Stats.Rejected)
			return nil
		},
	}
}

func newAchievementsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Manage your achievements",
	}
	cmd.AddCommand(
		newAchievementsListCommand(a),
		newAchievementsSubmitCommand(a),
		newAchievementsEditCommand(a),
		newAchievementsDeleteCommand(a),
		newAchievementsExportCommand(a),
	)
	return cmd
}

func newAchievementsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.navigate("/achievements"); err != nil {
				return err
			}
			page := pages.NewAchievementsPage(a.client)
			if err := page.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			if len(page.Achievements) == 0 {
				fmt.Println("No achievements yet. Start by adding your first achievement!")
				return nil
			}
			printAchievements(page.Achievements)
			return nil
		},
	}
}

func achievementFormFlags(cmd *cobra.Command, form *pages.AchievementForm, proofPath *string) {
	var category string
	cmd.Flags().StringVar(&form.Title, "title", "", "achievement title")
	cmd.Flags().StringVar(&form.Description, "description", "", "achievement description")
	cmd.Flags().StringVar(&category, "category", "academic", "achievement category")
	cmd.Flags().StringVar(&form.AchievementDate, "date", "", "achievement date (YYYY-MM-DD)")
	cmd.Flags().StringVar(proofPath, "proof", "", "path to a supporting document")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		form.Category = models.AchievementCategory(category)
	}
}

func loadProof(path string) (*api.FilePart, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open proof document: %w", err)
	}
	part := &api.FilePart{Field: "proof_document", FileName: filepath.Base(path), Reader: f}
	return part, func() { f.Close() }, nil
}

func newAchievementsSubmitCommand(a *app) *cobra.Command {
	var form pages.AchievementForm
	var proofPath string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new achievement for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.navigate("/achievements"); err != nil {
				return err
			}
			proof, cleanup, err := loadProof(proofPath)
			if err != nil {
				return err
			}
			defer cleanup()
			form.Proof = proof

			page := pages.NewAchievementsPage(a.client)
			if err := page.Submit(cmd.Context(), form); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			fmt.Println(page.Success)
			return nil
		},
	}
	achievementFormFlags(cmd, &form, &proofPath)
	return cmd
}

func newAchievementsEditCommand(a *app) *cobra.Command {
	var form pages.AchievementForm
	var proofPath string
	var id int64

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a pending achievement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.navigate("/achievements"); err != nil {
				return err
			}
			proof, cleanup, err := loadProof(proofPath)
			if err != nil {
				return err
			}
			defer cleanup()
			form.Proof = proof

			page := pages.NewAchievementsPage(a.client)
			if err := page.Edit(cmd.Context(), id, form); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			fmt.Println(page.Success)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "achievement id")
	_ = cmd.MarkFlagRequired("id")
	achievementFormFlags(cmd, &form, &proofPath)
	return cmd
}

func newAchievementsDeleteCommand(a *app) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a pending achievement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.navigate("/achievements"); err != nil {
				return err
			}
			page := pages.NewAchievementsPage(a.client)
			if err := page.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			fmt.Println(page.Success)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "achievement id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newAchievementsExportCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your achievements to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.navigate("/achievements"); err != nil {
				return err
			}
			page := pages.NewAchievementsPage(a.client)
			if err := page.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := export.WriteAchievementsXLSX(f, page.Achievements); err != nil {
				return err
			}
			fmt.Printf("Exported %d achievements to %s\n", len(page.Achievements), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "achievements.xlsx", "output file")
	return cmd
}

func newCoordinatorCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coordinator",
		Short: "Review pending achievements",
	}

	pending := &cobra.Command{
		Use:   "pending",
		Short: "List achievements awaiting review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.navigate("/coordinator"); err != nil {
				return err
			}
			page := pages.NewCoordinatorPage(a.client)
			if err := page.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			if len(page.Pending) == 0 {
				fmt.Println("No pending achievements to review")
				return nil
			}
			printAchievements(page.Pending)
			return nil
		},
	}

	var id int64
	var status, notes string
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Verify or reject an achievement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.navigate("/coordinator"); err != nil {
				return err
			}
			page := pages.NewCoordinatorPage(a.client)
			if err := page.Verify(cmd.Context(), id, models.AchievementStatus(status), notes); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			fmt.Println(page.Success)
			return nil
		},
	}
	verify.Flags().Int64Var(&id, "id", 0, "achievement id")
	verify.Flags().StringVar(&status, "status", "", "verified or rejected")
	verify.Flags().StringVar(&notes, "notes", "", "verification notes for the student")
	_ = verify.MarkFlagRequired("id")
	_ = verify.MarkFlagRequired("status")

	cmd.AddCommand(pending, verify)
	return cmd
}

func newProfileCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or update your profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.navigate("/profile"); err != nil {
				return err
			}
			page := pages.NewProfilePage(a.client)
			if err := page.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			printProfile(page.Profile)
			return nil
		},
	}

	var form pages.ProfileForm
	var picturePath string
	update := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.navigate("/profile"); err != nil {
				return err
			}
			if picturePath != "" {
				f, err := os.Open(picturePath)
				if err != nil {
					return fmt.Errorf("open profile picture: %w", err)
				}
				defer f.Close()
				form.Picture = &api.FilePart{
					Field:    "profile_picture",
					FileName: filepath.Base(picturePath),
					Reader:   f,
				}
			}
			page := pages.NewProfilePage(a.client)
			if err := page.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			if err := page.Update(cmd.Context(), form); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			fmt.Println(page.Success)
			return nil
		},
	}
	update.Flags().StringVar(&form.Bio, "bio", "", "short bio")
	update.Flags().StringVar(&form.Department, "department", "", "department")
	update.Flags().StringVar(&form.Year, "year", "", "year of study")
	update.Flags().StringVar(&form.CGPA, "cgpa", "", "CGPA")
	update.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	update.Flags().StringVar(&form.LinkedinURL, "linkedin", "", "LinkedIn URL")
	update.Flags().StringVar(&form.GithubURL, "github", "", "GitHub URL")
	update.Flags().StringVar(&picturePath, "picture", "", "path to a profile picture")

	cmd.AddCommand(show, update)
	return cmd
}

func newPublicProfileCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "public <profile-id>",
		Short: "View a public profile and its verified achievements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("profile id must be a number")
			}
			if err := a.navigate("/profile/" + args[0]); err != nil {
				return err
			}
			page := pages.NewPublicProfilePage(a.client, args[0])
			if err := page.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", page.Err, err)
			}
			printProfile(page.Profile)
			fmt.Printf("\nVerified achievements (%d):\n", len(page.Achievements))
			printAchievements(page.Achievements)
			return nil
		},
	}
}

func printAchievements(list []models.Achievement) {
	for _, a := range list {
		fmt.Printf("  [%d] %-30s %-12s %s\n", a.ID, a.Title, a.Status, models.CategoryLabels[a.Category])
		if a.VerificationNotes != "" {
			fmt.Printf("       Note: %s\n", a.VerificationNotes)
		}
	}
}

func printProfile(p models.StudentProfile) {
	fmt.Printf("%s (%s)\n", p.FullName, p.StudentID)
	if p.Department != "" {
		fmt.Printf("  Department: %s, Year: %s\n", p.Department, p.Year)
	}
	if p.Bio != "" {
		fmt.Printf("  %s\n", p.Bio)
	}
	if p.CGPA != "" {
		fmt.Printf("  CGPA: %s\n", p.CGPA)
	}
}
