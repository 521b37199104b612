package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"

	"horizon-rp/quartermaster/internal/db/repositories"
	"horizon-rp/quartermaster/internal/models/dtos"
	gormModels "horizon-rp/quartermaster/internal/models/gorm"
)

func setupApplicationTestDB(t *testing.T) *gormlib.DB {
	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&gormModels.WhitelistApplication{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

// mockSettingReader returns canned flag values.
type mockSettingReader struct {
	values map[string]string
}

func (m *mockSettingReader) GetSetting(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

// mockRoleChanger records role bridge calls.
type mockRoleChanger struct {
	calls []dtos.RoleChangeReq
	err   error
}

func (m *mockRoleChanger) ChangeRole(ctx context.Context, req dtos.RoleChangeReq) (*dtos.RoleChangeResult, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return &dtos.RoleChangeResult{DiscordID: req.DiscordID, Applied: true}, nil
}

// mockEmailSender captures outcome emails.
type mockEmailSender struct {
	to       []string
	subjects []string
	err      error
}

func (m *mockEmailSender) SendEmail(ctx context.Context, to, subject, html string) (string, error) {
	m.to = append(m.to, to)
	m.subjects = append(m.subjects, subject)
	if m.err != nil {
		return "", m.err
	}
	return "email-id", nil
}

func newWhitelistService(db *gormlib.DB, roles *mockRoleChanger, email *mockEmailSender, applicationsOpen string) *WhitelistService {
	return NewWhitelistService(
		repositories.NewApplicationRepository(db),
		&mockSettingReader{values: map[string]string{"applications_open": applicationsOpen}},
		roles,
		email,
	)
}

func submitReq() dtos.SubmitApplicationReq {
	return dtos.SubmitApplicationReq{
		DiscordID:       "123456789012345678",
		DiscordUsername: "applicant",
		Email:           "applicant@example.com",
		Answers:         map[string]string{"age": "21", "experience": "lots"},
	}
}

func TestWhitelistService_SubmitAndReviewApprove(t *testing.T) {
	db := setupApplicationTestDB(t)
	roles := &mockRoleChanger{}
	email := &mockEmailSender{}
	svc := newWhitelistService(db, roles, email, "true")

	app, err := svc.Submit(context.Background(), submitReq())
	if err != nil {
		t.Fatalf("Expected no error submitting, got %v", err)
	}
	if app.Status != gormModels.ApplicationStatusPending {
		t.Errorf("Expected pending status, got %s", app.Status)
	}

	reviewed, err := svc.Review(context.Background(), app.ID, "staff-1", dtos.ReviewApplicationReq{
		Approve: true,
		Note:    "solid answers",
	})
	if err != nil {
		t.Fatalf("Expected no error reviewing, got %v", err)
	}
	if reviewed.Status != gormModels.ApplicationStatusApproved {
		t.Errorf("Expected approved status, got %s", reviewed.Status)
	}

	if len(roles.calls) != 1 {
		t.Fatalf("Expected one role call, got %d", len(roles.calls))
	}
	if roles.calls[0].RoleType != "whitelisted" || roles.calls[0].Action != "add" {
		t.Errorf("Expected whitelisted add, got %+v", roles.calls[0])
	}

	if len(email.to) != 1 || email.to[0] != "applicant@example.com" {
		t.Errorf("Expected outcome email to applicant, got %v", email.to)
	}
}

func TestWhitelistService_ReviewDenySkipsRole(t *testing.T) {
	db := setupApplicationTestDB(t)
	roles := &mockRoleChanger{}
	email := &mockEmailSender{}
	svc := newWhitelistService(db, roles, email, "true")

	app, err := svc.Submit(context.Background(), submitReq())
	if err != nil {
		t.Fatalf("Expected no error submitting, got %v", err)
	}

	reviewed, err := svc.Review(context.Background(), app.ID, "staff-1", dtos.ReviewApplicationReq{Approve: false, Note: "too young"})
	if err != nil {
		t.Fatalf("Expected no error reviewing, got %v", err)
	}
	if reviewed.Status != gormModels.ApplicationStatusDenied {
		t.Errorf("Expected denied status, got %s", reviewed.Status)
	}
	if len(roles.calls) != 0 {
		t.Error("Expected no role call on denial")
	}
	if len(email.to) != 1 {
		t.Errorf("Expected denial email, got %d sends", len(email.to))
	}
}

func TestWhitelistService_ClosedApplicationsRejected(t *testing.T) {
	db := setupApplicationTestDB(t)
	svc := newWhitelistService(db, &mockRoleChanger{}, &mockEmailSender{}, "false")

	if _, err := svc.Submit(context.Background(), submitReq()); !errors.Is(err, ErrApplicationsClosed) {
		t.Errorf("Expected ErrApplicationsClosed, got %v", err)
	}
}

func TestWhitelistService_DuplicatePendingRejected(t *testing.T) {
	db := setupApplicationTestDB(t)
	svc := newWhitelistService(db, &mockRoleChanger{}, &mockEmailSender{}, "true")

	if _, err := svc.Submit(context.Background(), submitReq()); err != nil {
		t.Fatalf("Expected first submission to pass, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), submitReq()); !errors.Is(err, ErrDuplicateApplication) {
		t.Errorf("Expected ErrDuplicateApplication, got %v", err)
	}
}

func TestWhitelistService_RoleFailureKeepsApplicationPending(t *testing.T) {
	db := setupApplicationTestDB(t)
	roles := &mockRoleChanger{err: ErrMemberNotInGuild}
	svc := newWhitelistService(db, roles, &mockEmailSender{}, "true")

	app, err := svc.Submit(context.Background(), submitReq())
	if err != nil {
		t.Fatalf("Expected no error submitting, got %v", err)
	}

	if _, err := svc.Review(context.Background(), app.ID, "staff-1", dtos.ReviewApplicationReq{Approve: true}); err == nil {
		t.Fatal("Expected review to fail when the role cannot be assigned")
	}

	reloaded, err := repositories.NewApplicationRepository(db).FindByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("Failed to reload application: %v", err)
	}
	if reloaded.Status != gormModels.ApplicationStatusPending {
		t.Errorf("Expected application to stay pending, got %s", reloaded.Status)
	}
}

func TestWhitelistService_DoubleReviewRejected(t *testing.T) {
	db := setupApplicationTestDB(t)
	svc := newWhitelistService(db, &mockRoleChanger{}, &mockEmailSender{}, "true")

	app, err := svc.Submit(context.Background(), submitReq())
	if err != nil {
		t.Fatalf("Expected no error submitting, got %v", err)
	}
	if _, err := svc.Review(context.Background(), app.ID, "staff-1", dtos.ReviewApplicationReq{Approve: false}); err != nil {
		t.Fatalf("Expected first review to pass, got %v", err)
	}
	if _, err := svc.Review(context.Background(), app.ID, "staff-2", dtos.ReviewApplicationReq{Approve: true}); !errors.Is(err, ErrAlreadyReviewed) {
		t.Errorf("Expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestWhitelistService_EmailFailureDoesNotFailReview(t *testing.T) {
	db := setupApplicationTestDB(t)
	email := &mockEmailSender{err: errors.New("resend down")}
	svc := newWhitelistService(db, &mockRoleChanger{}, email, "true")

	app, err := svc.Submit(context.Background(), submitReq())
	if err != nil {
		t.Fatalf("Expected no error submitting, got %v", err)
	}
	if _, err := svc.Review(context.Background(), app.ID, "staff-1", dtos.ReviewApplicationReq{Approve: true}); err != nil {
		t.Errorf("Expected review to succeed despite email failure, got %v", err)
	}
}
