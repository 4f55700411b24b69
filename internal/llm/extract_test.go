package llm

import (
	"errors"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{name: "bare", content: `{"a":1}`, want: `{"a":1}`},
		{name: "prose around", content: "Here you go:\n{\"a\":{\"b\":2}}\nHope this helps!", want: `{"a":{"b":2}}`},
		{name: "fenced", content: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "none", content: "sorry, I cannot help", wantErr: ErrNoJSONObject},
		{name: "reversed braces", content: "} oops {", wantErr: ErrNoJSONObject},
		{name: "empty", content: "", wantErr: ErrNoJSONObject},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ExtractJSONObject() = %q, want %q", got, tt.want)
			}
		})
	}
}
