package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	t.Setenv("HOME", "/home/ops")
	t.Setenv("USER", "ops")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "HOME expands", input: "${HOME}/streaming", expected: "/home/ops/streaming"},
		{name: "USER expands", input: "/srv/${USER}/hls", expected: "/srv/ops/hls"},
		{name: "multiple variables", input: "${HOME}/${USER}", expected: "/home/ops/ops"},
		{name: "absolute path unchanged", input: "/var/streaming", expected: "/var/streaming"},
		{name: "tilde left alone", input: "~/streaming", expected: "~/streaming"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Expand(tt.input))
		})
	}
}

func TestExpandTilde(t *testing.T) {
	t.Setenv("HOME", "/home/ops")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "bare tilde", input: "~", expected: "/home/ops"},
		{name: "tilde path", input: "~/streaming", expected: filepath.Join("/home/ops", "streaming")},
		{name: "other user unsupported", input: "~root/streaming", expected: "~root/streaming"},
		{name: "absolute", input: "/var/streaming", expected: "/var/streaming"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandTilde(tt.input))
		})
	}
}

func TestGetUser_Fallbacks(t *testing.T) {
	t.Setenv("USER", "")
	t.Setenv("LOGNAME", "logname-user")
	assert.Equal(t, "logname-user", getUser())

	t.Setenv("LOGNAME", "")
	t.Setenv("USERNAME", "")
	assert.Equal(t, "user", getUser())
}
