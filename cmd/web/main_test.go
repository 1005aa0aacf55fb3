package main

import (
	"strings"
	"testing"
)

func TestRenderPageDefaultPort(t *testing.T) {
	page := renderPage("play.example.com", "")
	if !strings.Contains(page, "<pre>ssh play.example.com</pre>") {
		t.Error("expected plain ssh command")
	}
	if strings.Contains(page, "{{.") {
		t.Error("placeholder left in page")
	}
}

func TestRenderPageCustomPort(t *testing.T) {
	page := renderPage("play.example.com", "2222")
	if !strings.Contains(page, "ssh -p 2222 play.example.com") {
		t.Error("expected port flag in ssh command")
	}
}
