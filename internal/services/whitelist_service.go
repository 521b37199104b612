package services

import (
	"context"
	"errors"
	"fmt"

	"horizon-rp/quartermaster/internal/common"
	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/logging"
	"horizon-rp/quartermaster/internal/models/dtos"
	gormModels "horizon-rp/quartermaster/internal/models/gorm"
)

var (
	ErrApplicationsClosed   = errors.New("whitelist applications are currently closed")
	ErrDuplicateApplication = errors.New("a pending application already exists for this discord id")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrAlreadyReviewed      = errors.New("application has already been reviewed")
)

// RoleChanger is the slice of the role bridge the whitelist flow needs.
type RoleChanger interface {
	ChangeRole(ctx context.Context, req dtos.RoleChangeReq) (*dtos.RoleChangeResult, error)
}

// EmailSender delivers the application outcome email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html string) (string, error)
}

// SettingReader is the slice of the settings service used for feature flags.
type SettingReader interface {
	GetSetting(ctx context.Context, key string) (string, error)
}

// WhitelistService handles the application lifecycle: submission while
// applications are open, staff review, and on approval the whitelisted
// Discord role plus a notification email.
type WhitelistService struct {
	applications *repositories.ApplicationRepository
	settings     SettingReader
	roles        RoleChanger
	email        EmailSender
}

func NewWhitelistService(
	applications *repositories.ApplicationRepository,
	settings SettingReader,
	roles RoleChanger,
	email EmailSender,
) *WhitelistService {
	return &WhitelistService{
		applications: applications,
		settings:     settings,
		roles:        roles,
		email:        email,
	}
}

// Submit stores a new application when applications are open and the
// applicant has no pending one.
func (s *WhitelistService) Submit(ctx context.Context, req dtos.SubmitApplicationReq) (*gormModels.WhitelistApplication, error) {
	if !IsValidDiscordID(req.DiscordID) {
		return nil, ErrInvalidDiscordID
	}

	open, err := s.settings.GetSetting(ctx, common.SettingKeyApplicationsOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to read applications_open: %w", err)
	}
	if open == "false" {
		return nil, ErrApplicationsClosed
	}

	existing, err := s.applications.FindPendingByDiscordID(ctx, req.DiscordID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing applications: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateApplication
	}

	app := &gormModels.WhitelistApplication{
		DiscordID:       req.DiscordID,
		DiscordUsername: req.DiscordUsername,
		Email:           req.Email,
		Answers:         req.Answers,
		Status:          gormModels.ApplicationStatusPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return app, nil
}

// ListPending returns applications awaiting review.
func (s *WhitelistService) ListPending(ctx context.Context, limit int) ([]gormModels.WhitelistApplication, error) {
	return s.applications.ListByStatus(ctx, gormModels.ApplicationStatusPending, limit)
}

// Review approves or denies an application. Approval assigns the
// whitelisted Discord role; the outcome email is best-effort either way.
func (s *WhitelistService) Review(ctx context.Context, appID, reviewedBy string, req dtos.ReviewApplicationReq) (*gormModels.WhitelistApplication, error) {
	app, err := s.applications.FindByID(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	if app.Status != gormModels.ApplicationStatusPending {
		return nil, ErrAlreadyReviewed
	}

	status := gormModels.ApplicationStatusDenied
	if req.Approve {
		status = gormModels.ApplicationStatusApproved

		// Role assignment is the part that actually grants access, so it
		// must succeed before the status flips.
		if _, err := s.roles.ChangeRole(ctx, dtos.RoleChangeReq{
			DiscordID: app.DiscordID,
			RoleType:  "whitelisted",
			Action:    "add",
		}); err != nil {
			return nil, fmt.Errorf("failed to assign whitelisted role: %w", err)
		}
	}

	if err := s.applications.SetStatus(ctx, app.ID, status, reviewedBy, req.Note); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	app.Status = status
	app.ReviewedBy = &reviewedBy
	app.ReviewNote = req.Note

	s.sendOutcomeEmail(ctx, app)
	return app, nil
}

func (s *WhitelistService) sendOutcomeEmail(ctx context.Context, app *gormModels.WhitelistApplication) {
	if s.email == nil || app.Email == "" {
		return
	}

	subject := "Your whitelist application was denied"
	body := fmt.Sprintf("<p>Hi %s,</p><p>Unfortunately your whitelist application was not approved.</p>", app.DiscordUsername)
	if app.Status == gormModels.ApplicationStatusApproved {
		subject = "Welcome to the server!"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your whitelist application has been approved. See you in the city!</p>", app.DiscordUsername)
	}
	if app.ReviewNote != "" {
		body += fmt.Sprintf("<p>Reviewer note: %s</p>", app.ReviewNote)
	}

	if _, err := s.email.SendEmail(ctx, app.Email, subject, body); err != nil {
		logging.Warn(fmt.Sprintf("Failed to send application email to %s: %v", app.Email, err))
	}
}
