package watch

import "testing"

func TestEditDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
	}
	for _, c := range cases {
		if got := EditDistance(c.a, c.b); got != c.want {
			t.Fatalf("EditDistance(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"John Doe", "a", "José Núñez"} {
		if got := Similarity(s, s); got != 100 {
			t.Fatalf("Similarity(%q, %q) = %d, want 100", s, s, got)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"John Doe", "Jon Doe"},
		{"kitten", "sitting"},
		{"", "abc"},
	}
	for _, p := range pairs {
		if Similarity(p[0], p[1]) != Similarity(p[1], p[0]) {
			t.Fatalf("Similarity not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestSimilarityEmpty(t *testing.T) {
	if got := Similarity("", "John"); got != 0 {
		t.Fatalf("Similarity with empty side = %d, want 0", got)
	}
	if got := Similarity("...", "John"); got != 0 {
		t.Fatalf("Similarity with punctuation-only side = %d, want 0", got)
	}
}

func TestSimilarityAccentInsensitive(t *testing.T) {
	if got := Similarity("José", "JOSE"); got != 100 {
		t.Fatalf("Similarity(José, JOSE) = %d, want 100", got)
	}
}

func TestSimilarityCloseName(t *testing.T) {
	// "JON DOE" vs "JOHN DOE": one insertion over 8 chars.
	if got := Similarity("Jon Doe", "John Doe"); got < 85 {
		t.Fatalf("Similarity(Jon Doe, John Doe) = %d, want >= 85", got)
	}
}
