package js

import "testing"

func TestLocatorPosition(t *testing.T) {
	src := []byte("ab\ncd\r\nef\rgh\xe2\x80\xa8ij")
	loc := NewLocator(src)

	tests := []struct {
		offset ByteOffset
		want   Position
	}{
		{0, Position{1, 1}},
		{1, Position{1, 2}},
		{2, Position{1, 3}}, // the newline itself
		{3, Position{2, 1}},
		{5, Position{2, 3}},
		{7, Position{3, 1}},
		{10, Position{4, 1}},
		{15, Position{5, 1}},
		{16, Position{5, 2}},
		{100, Position{5, 3}},
	}
	for _, tt := range tests {
		if got := loc.Position(tt.offset); got != tt.want {
			t.Errorf("Position(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
	if loc.LineCount() != 5 {
		t.Errorf("LineCount = %d, want 5", loc.LineCount())
	}
}

func TestLocatorEmpty(t *testing.T) {
	loc := NewLocator(nil)
	if got := loc.Position(0); got != (Position{1, 1}) {
		t.Errorf("Position(0) = %v", got)
	}
	if got := loc.Position(5); got != (Position{1, 1}) {
		t.Errorf("Position(5) = %v", got)
	}
}

func TestLocatorRange(t *testing.T) {
	loc := NewLocator([]byte("let x"))
	begin, end := loc.Range(Span{Start: 4, End: 5})
	if begin != 4 || end != 5 {
		t.Errorf("Range = [%d,%d), want [4,5)", begin, end)
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Line: 3, Column: 7}).String(); got != "3:7" {
		t.Errorf("String = %q", got)
	}
}
