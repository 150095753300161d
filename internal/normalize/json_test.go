package normalize

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractJSON_Direct(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{
			name: "object",
			in:   `{"status": "ok", "count": 2}`,
			want: map[string]any{"status": "ok", "count": float64(2)},
		},
		{
			name: "array",
			in:   `[1, 2, 3]`,
			want: []any{float64(1), float64(2), float64(3)},
		},
		{
			name: "nested",
			in:   `{"a": {"b": [1, {"c": "d"}]}}`,
			want: map[string]any{"a": map[string]any{"b": []any{float64(1), map[string]any{"c": "d"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractJSON mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractJSON_FencedBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"json fence", "Here is the artifact:\n```json\n{\"status\": \"complete\"}\n```\nDone."},
		{"bare fence", "```\n{\"status\": \"complete\"}\n```"},
		{"fence with trailing prose", "```json\n{\"status\": \"complete\"}\n```\nLet me know if you need changes."},
	}

	want := map[string]any{"status": "complete"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.in)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ExtractJSON mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractJSON_EmbeddedInProse(t *testing.T) {
	in := `I reviewed the contract and found the following. {"findings": [{"id": "F-1"}]} Hope this helps!`
	want := map[string]any{"findings": []any{map[string]any{"id": "F-1"}}}
	got := ExtractJSON(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractJSON mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	got := ExtractJSON(`{"msg": "a { b } c"}`)
	want := map[string]any{"msg": "a { b } c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("braces inside string literal broke nesting (-want +got):\n%s", diff)
	}
}

func TestExtractJSON_EscapedQuotesInsideStrings(t *testing.T) {
	got := ExtractJSON(`prefix {"msg": "say \"hi\""} suffix`)
	want := map[string]any{"msg": `say "hi"`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("escaped quote ended string mode early (-want +got):\n%s", diff)
	}
}

func TestExtractJSON_FirstTokenWins(t *testing.T) {
	// The bracket appearing earlier is tried first, object or not.
	got := ExtractJSON(`noise [1, 2] then {"a": 1}`)
	want := []any{float64(1), float64(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("expected earlier array to win (-want +got):\n%s", diff)
	}

	got = ExtractJSON(`noise {"a": 1} then [1, 2]`)
	wantObj := map[string]any{"a": float64(1)}
	if diff := cmp.Diff(wantObj, got); diff != "" {
		t.Errorf("expected earlier object to win (-want +got):\n%s", diff)
	}
}

func TestExtractJSON_FallsBackToLaterBracket(t *testing.T) {
	// The first bracket never closes; the later array should still parse.
	got := ExtractJSON(`broken { oops... but [1, 2] is fine`)
	want := []any{float64(1), float64(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("expected fallback to later bracket (-want +got):\n%s", diff)
	}
}

func TestExtractJSON_Unrecoverable(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t"},
		{"prose only", "no structured content here"},
		{"unbalanced", `{"a": [1, 2`},
		{"bare primitive in prose", "the answer is 42, obviously"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.in); got != nil {
				t.Errorf("ExtractJSON(%q) = %v, want nil", tt.in, got)
			}
		})
	}
}

func TestExtractJSON_RoundTrips(t *testing.T) {
	values := []any{
		map[string]any{"status": "approved", "n": float64(3)},
		[]any{map[string]any{"id": "RT-001"}, map[string]any{"id": "RT-002"}},
		map[string]any{"nested": map[string]any{"deep": []any{"a", "b"}}},
	}

	for _, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		cases := []string{
			string(raw),
			"```json\n" + string(raw) + "\n```",
			"Some prose before. " + string(raw) + " And after.",
		}
		for _, c := range cases {
			got := ExtractJSON(c)
			if diff := cmp.Diff(v, got); diff != "" {
				t.Errorf("round trip through %q failed (-want +got):\n%s", c, diff)
			}
		}
	}
}
