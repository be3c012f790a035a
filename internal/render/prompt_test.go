package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestWaitForEnter(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"newline", "\n"},
		{"text then newline", "anything\nmore\n"},
		{"eof", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := WaitForEnter(strings.NewReader(tt.input), &out); err != nil {
				t.Fatalf("WaitForEnter() error = %v", err)
			}
			if out.String() != ContinuePrompt {
				t.Errorf("prompt = %q, want %q", out.String(), ContinuePrompt)
			}
		})
	}
}

func TestWaitForEnter_ReadError(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer

	err := WaitForEnter(iotest.ErrReader(boom), &out)
	if !errors.Is(err, boom) {
		t.Errorf("WaitForEnter() error = %v, want %v", err, boom)
	}
}

func TestIsTerminal_Nil(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("IsTerminal(nil) = true, want false")
	}
}

func TestColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled(nil) {
		t.Error("ColorEnabled() = true with NO_COLOR set")
	}
}
