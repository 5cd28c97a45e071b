package pundit

import "testing"

func TestSegment(t *testing.T) {
	seg, err := newPunktSegmenter()
	if err != nil {
		t.Fatalf("newPunktSegmenter: %v", err)
	}

	text := "The vote failed. Sen. Davis objected loudly. A recount followed."
	sents := seg.segment(text)
	if len(sents) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(sents), sents)
	}

	want := []string{
		"The vote failed.",
		"Sen. Davis objected loudly.",
		"A recount followed.",
	}
	for i, s := range sents {
		if s.Text != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, s.Text, want[i])
		}
		if got := text[s.Start:s.End]; got != s.Text {
			t.Errorf("offsets of sentence %d select %q, want %q", i, got, s.Text)
		}
	}
}

func TestSnippet(t *testing.T) {
	text := "The bill passed today. Debate ran long. Both sides claimed a win."

	tests := []struct {
		max      int
		expected string
	}{
		{1, "The bill passed today."},
		{2, "The bill passed today. Debate ran long."},
		{10, "The bill passed today. Debate ran long. Both sides claimed a win."},
		{0, text},
	}
	for _, test := range tests {
		if got := Snippet(text, test.max); got != test.expected {
			t.Errorf("Snippet(max=%d) = %q, want %q", test.max, got, test.expected)
		}
	}
}

func TestSnippetEmpty(t *testing.T) {
	if got := Snippet("", 2); got != "" {
		t.Errorf("Snippet of empty text = %q, want empty", got)
	}
}
