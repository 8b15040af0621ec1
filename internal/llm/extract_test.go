package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare json",
			input: `{"title":"T"}`,
			want:  `{"title":"T"}`,
		},
		{
			name:  "json fence with surrounding noise",
			input: "noise ```json\n{\"title\":\"T\",\"description\":\"D\"}\n``` trailing",
			want:  `{"title":"T","description":"D"}`,
		},
		{
			name:  "untagged fence",
			input: "Here you go:\n```\n{\"a\":1}\n```\nEnjoy!",
			want:  `{"a":1}`,
		},
		{
			name:  "brace span without fences",
			input: `prefix {"a":1} suffix`,
			want:  `{"a":1}`,
		},
		{
			name:  "brace span swallows nested braces",
			input: `sure: {"a":{"b":2}} done`,
			want:  `{"a":{"b":2}}`,
		},
		{
			name:  "json fence preferred over brace span",
			input: "{broken ```json\n{\"ok\":true}\n```",
			want:  `{"ok":true}`,
		},
		{
			name:    "no json at all",
			input:   "I am sorry, I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "braces but invalid json",
			input:   "something {not json} here",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}
