package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<b>bold</b> claim", "bold claim"},
		{"<script>alert(1)</script>hello", "alert(1)hello"},
		{"&lt;img src=x&gt;safe", "safe"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		if got := StripHTML(tc.in); got != tc.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUtteranceCollapsesWhitespace(t *testing.T) {
	if got := Utterance("I need   space\n\tin Koramangala"); got != "I need space in Koramangala" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Utterance("<p></p>"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
