package hooks

import (
	"bytes"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestContextHookAddsCallsite(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	logger.Out = &buf
	logger.AddHook(NewContextHook())

	logger.Info("dispatching")

	if !strings.Contains(buf.String(), "context_hook_test.go:") {
		t.Fatalf("Expected callsite in log line, got %q", buf.String())
	}
}
