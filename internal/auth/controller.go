package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/FryoPie/Student-portal/internal/api"
	"github.com/FryoPie/Student-portal/internal/models"
	"github.com/FryoPie/Student-portal/internal/session"
	"github.com/FryoPie/Student-portal/internal/validator"
)

// RegistrationError carries the field-level messages the remote service
// returned for a rejected registration, concatenated into one human-readable
// string.
type RegistrationError struct {
	Fields map[string][]string
	msg    string
}

func (e *RegistrationError) Error() string { return e.msg }

// loginResponse is the body of a successful POST /auth/login/.
type loginResponse struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    models.User `json:"user"`
}

// Controller owns the session. Every session mutation in the application
// goes through Login, Register or Logout; everything else only reads.
type Controller struct {
	store    *session.Store
	client   *api.Client
	validate *validator.Validator
	logger   *slog.Logger
}

func NewController(store *session.Store, client *api.Client, validate *validator.Validator, logger *slog.Logger) *Controller {
	return &Controller{store: store, client: client, validate: validate, logger: logger}
}

// Bootstrap rehydrates a previously saved session and, when one exists,
// installs its access token as the client's default credential. No network
// call is made; an expired token surfaces later as a 401.
func (c *Controller) Bootstrap() {
	c.store.Load()
	if sess, ok := c.store.Current(); ok {
		c.client.SetToken(sess.Credential.AccessToken)
		c.logger.Debug("session restored", "student_id", sess.User.StudentID, "role", sess.User.Role)
	}
}

// EnableForcedLogout makes an expired or revoked credential tear the session
// down: any 401 on an authenticated request triggers Logout.
func (c *Controller) EnableForcedLogout() {
	c.client.SetUnauthorizedHook(func() {
		c.logger.Info("credential rejected by remote service, clearing session")
		c.Logout()
	})
}

// Login exchanges a roll number and password for a credential and user
// record, persists both, and installs the access token. On rejection the
// session is left unchanged and the authentication error is returned as-is.
func (c *Controller) Login(ctx context.Context, studentID, password string) (*models.User, error) {
	req := validator.LoginRequest{StudentID: studentID, Password: password}
	if verrs := c.validate.Validate(req); verrs != nil {
		return nil, api.NewValidationError(verrs.Error())
	}

	var resp loginResponse
	if err := c.client.PostJSON(ctx, "/auth/login/", req, &resp); err != nil {
		return nil, err
	}

	cred := session.Credential{AccessToken: resp.Access, RefreshToken: resp.Refresh}
	if err := c.store.Save(cred, resp.User); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	c.client.SetToken(resp.Access)
	c.logger.Info("logged in", "student_id", resp.User.StudentID, "role", resp.User.Role)
	return &resp.User, nil
}

// Register creates an account and immediately logs in with the same
// credentials; registration alone does not establish a session. Password
// checks run before any network call.
func (c *Controller) Register(ctx context.Context, req validator.RegisterRequest) (*models.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, api.NewValidationError("Passwords do not match")
	}
	if len(req.Password) < 8 {
		return nil, api.NewValidationError("Password must be at least 8 characters long")
	}
	if verrs := c.validate.Validate(req); verrs != nil {
		return nil, api.NewValidationError(verrs.Error())
	}

	if err := c.client.PostJSON(ctx, "/auth/register/", req, nil); err != nil {
		var ae *api.Error
		if errors.As(err, &ae) && len(ae.Fields) > 0 {
			return nil, &RegistrationError{Fields: ae.Fields, msg: ae.Error()}
		}
		return nil, err
	}

	return c.Login(ctx, req.StudentID, req.Password)
}

// Logout clears the session from durable storage and memory and drops the
// client credential. Purely local; it always succeeds.
func (c *Controller) Logout() {
	c.store.Clear()
	c.client.ClearToken()
	c.logger.Info("logged out")
}

// IsAuthenticated reports whether a session exists.
func (c *Controller) IsAuthenticated() bool {
	_, ok := c.store.Current()
	return ok
}

// IsCoordinator reports whether the session's role is coordinator.
func (c *Controller) IsCoordinator() bool {
	sess, ok := c.store.Current()
	return ok && sess.User.Role == models.RoleCoordinator
}

// IsStudent reports whether the session's role is student.
func (c *Controller) IsStudent() bool {
	sess, ok := c.store.Current()
	return ok && sess.User.Role == models.RoleStudent
}

// CurrentUser returns the user record captured at login time.
func (c *Controller) CurrentUser() (models.User, bool) {
	sess, ok := c.store.Current()
	if !ok {
		return models.User{}, false
	}
	return sess.User, true
}
