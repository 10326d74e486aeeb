package domain

import "testing"

func TestDedupSet(t *testing.T) {
	s := NewDedupSet()

	if !s.Add("a") {
		t.Error("first Add must report a new key")
	}
	if s.Add("a") {
		t.Error("repeated Add must report a duplicate")
	}
	if !s.Add("b") {
		t.Error("different key must be accepted")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 accepted keys, got %d", s.Len())
	}
}

func TestTitleArtistKey(t *testing.T) {
	a := TitleArtistKey("Song", "Artist")
	b := TitleArtistKey("Song", "Artist")
	c := TitleArtistKey("Song", "Other")

	if a != b {
		t.Errorf("same name and artist must produce the same key: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("different artists must produce different keys: %q", a)
	}
}
