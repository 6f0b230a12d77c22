package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := NewWithWriter(&buffer, "debug", "json")
	if err != nil {
		t.Fatalf("NewWithWriter() unexpected error: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}

	logger.WithField("user_id", 7).Info("saved")

	entry := map[string]any{}
	if err := json.Unmarshal(buffer.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output, got %q: %v", buffer.String(), err)
	}
	if entry["msg"] != "saved" {
		t.Fatalf("expected msg=saved, got %v", entry["msg"])
	}
	if entry["user_id"] != float64(7) {
		t.Fatalf("expected user_id field, got %v", entry["user_id"])
	}
}

func TestNewWithWriterTextDefaults(t *testing.T) {
	var buffer bytes.Buffer
	logger, err := NewWithWriter(&buffer, "", "")
	if err != nil {
		t.Fatalf("NewWithWriter() unexpected error: %v", err)
	}
	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", logger.GetLevel())
	}

	logger.Debug("hidden")
	logger.Warn("visible")
	output := buffer.String()
	if strings.Contains(output, "hidden") {
		t.Fatalf("debug line should be filtered, got %q", output)
	}
	if !strings.Contains(output, "msg=visible") {
		t.Fatalf("expected text formatted line, got %q", output)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", "text"); err == nil {
		t.Fatal("expected unknown level to fail")
	}
}
