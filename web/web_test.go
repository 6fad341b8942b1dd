package web

import (
	"strings"
	"testing"
)

func TestRenderKnownTemplates(t *testing.T) {
	templates := NewTemplates()

	var buf strings.Builder
	if err := templates.Render(&buf, "error", struct{ Message string }{Message: "boom"}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Error("rendered page does not contain the error message")
	}
	if !strings.Contains(buf.String(), "<!DOCTYPE html>") {
		t.Error("rendered page does not include the base layout")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if err := NewTemplates().Render(&strings.Builder{}, "missing", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}
