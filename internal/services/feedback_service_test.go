package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"horizon-rp/quartermaster/internal/config"
	"horizon-rp/quartermaster/internal/models/dtos"
)

func TestFeedbackPostsToConfiguredChannel(t *testing.T) {
	alerts := &mockAlertClient{}
	svc := NewFeedbackService(alerts, &config.Config{FeedbackChannelID: "200200200200200200"})

	err := svc.Submit(context.Background(), dtos.FeedbackReq{
		Message:         "The gallery page 404s on mobile",
		DiscordUsername: "jane_rp",
		Page:            "/gallery",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if alerts.sends != 1 {
		t.Errorf("Expected 1 embed, got %d", alerts.sends)
	}
	if alerts.channelID != "200200200200200200" {
		t.Errorf("Embed went to wrong channel: %s", alerts.channelID)
	}
}

func TestFeedbackRejectsEmptyMessage(t *testing.T) {
	alerts := &mockAlertClient{}
	svc := NewFeedbackService(alerts, &config.Config{FeedbackChannelID: "200200200200200200"})

	err := svc.Submit(context.Background(), dtos.FeedbackReq{Message: "   "})
	if !errors.Is(err, ErrEmptyFeedback) {
		t.Fatalf("Expected ErrEmptyFeedback, got %v", err)
	}
	if alerts.sends != 0 {
		t.Errorf("Expected no embed for empty feedback, got %d", alerts.sends)
	}
}

func TestFeedbackTruncatesLongMessages(t *testing.T) {
	alerts := &mockAlertClient{}
	svc := NewFeedbackService(alerts, &config.Config{FeedbackChannelID: "200200200200200200"})

	// Multi-byte runes past the limit must not be split into invalid UTF-8.
	err := svc.Submit(context.Background(), dtos.FeedbackReq{
		Message: strings.Repeat("é", maxFeedbackLength+500),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if alerts.sends != 1 {
		t.Errorf("Expected 1 embed, got %d", alerts.sends)
	}
	if !utf8.ValidString(alerts.lastDescription) {
		t.Error("Truncated message is not valid UTF-8")
	}
	if got := len([]rune(alerts.lastDescription)); got != maxFeedbackLength {
		t.Errorf("Expected %d runes after truncation, got %d", maxFeedbackLength, got)
	}
}
