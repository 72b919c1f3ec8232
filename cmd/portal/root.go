package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/auth"
	"github.com/FryoPie/Student-portal/internal/config"
	"github.com/FryoPie/Student-portal/internal/guard"
	"github.com/FryoPie/Student-portal/internal/session"
	"github.com/FryoPie/Student-portal/internal/shell"
	"github.com/FryoPie/Student-portal/internal/validator"
)

// app bundles the wired components every command uses.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	client *api.Client
	store  *session.Store
	auth   *auth.Controller
	guard  *guard.Guard
	shell  *shell.Shell
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	client := api.NewClient(cfg.APIBaseURL, logger)
	store := session.NewStore(cfg.StateDir, logger)
	authCtl := auth.NewController(store, client, validator.New(), logger)

	authCtl.Bootstrap()
	authCtl.EnableForcedLogout()

	return &app{
		cfg:    cfg,
		logger: logger,
		client: client,
		store:  store,
		auth:   authCtl,
		guard:  guard.New(authCtl),
		shell:  shell.New(authCtl, client),
	}, nil
}

// navigate runs the route guard for a page command. A redirect decision
// aborts the command and names the target, the way the browser shell would
// send the user there.
func (a *app) navigate(path string) error {
	decision := a.guard.Evaluate(path)
	if decision.State == guard.Redirected {
		if decision.Target == "/login" {
			return fmt.Errorf("not logged in (redirected to %s)", decision.Target)
		}
		return fmt.Errorf("this page is not available for your role (redirected to %s)", decision.Target)
	}
	return nil
}

func newRootCommand() (*cobra.Command, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:           "portal",
		Short:         "Student Achievement Portal client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCommand(a),
		newRegisterCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newDashboardCommand(a),
		newAchievementsCommand(a),
		newCoordinatorCommand(a),
		newProfileCommand(a),
		newPublicProfileCommand(a),
		newNotificationsCommand(a),
	)
	return root, nil
}
