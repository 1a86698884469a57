package skimmer

import "testing"

func TestDisplayWidth(t *testing.T) {
	for _, tc := range []struct {
		text  string
		width int
	}{
		{"", 0},
		{"abcdefg", 7},
		{"abcdefg한글", 11},
		{"abcdefg한글!", 12},
		{"café", 5},
		{"\t", 1},
	} {
		if width := displayWidth([]rune(tc.text)); width != tc.width {
			t.Errorf("displayWidth(%q) = %d, expected %d", tc.text, width, tc.width)
		}
	}
}

func TestLeftFixed(t *testing.T) {
	for _, tc := range []struct {
		text     string
		maxWidth int
		index    int
	}{
		{"abcdef", 0, 0},
		{"abcdef", -3, 0},
		{"abcdef", 3, 2},
		{"abcdef", 6, 5},
		{"abcdef", 100, 5},
		{"a한b", 2, 0},
		{"a한b", 3, 1},
		{"한글", 1, -1},
	} {
		if index := leftFixed([]rune(tc.text), tc.maxWidth); index != tc.index {
			t.Errorf("leftFixed(%q, %d) = %d, expected %d", tc.text, tc.maxWidth, index, tc.index)
		}
	}
}

func TestRightFixed(t *testing.T) {
	for _, tc := range []struct {
		text     string
		maxWidth int
		index    int
	}{
		{"abcdef", 0, 5},
		{"abcdef", -1, 5},
		{"abcdef", 3, 3},
		{"abcdef", 6, 0},
		{"abcdef", 100, 0},
		{"a한b", 2, 2},
		{"a한b", 3, 1},
	} {
		if index := rightFixed([]rune(tc.text), tc.maxWidth); index != tc.index {
			t.Errorf("rightFixed(%q, %d) = %d, expected %d", tc.text, tc.maxWidth, index, tc.index)
		}
	}
}

// The runes picked from the left and from the right never exceed the budget
func TestFixedWithinBudget(t *testing.T) {
	texts := []string{"abcdefghij", "a한b글c", "한글한글", "x"}
	for _, text := range texts {
		runes := []rune(text)
		for budget := 1; budget <= displayWidth(runes); budget++ {
			if left := leftFixed(runes, budget); displayWidth(runes[:left+1]) > budget {
				t.Errorf("leftFixed(%q, %d) = %d exceeds the budget", text, budget, left)
			}
			if right := rightFixed(runes, budget); displayWidth(runes[right:]) > budget {
				t.Errorf("rightFixed(%q, %d) = %d exceeds the budget", text, budget, right)
			}
		}
	}
}

func TestReshape(t *testing.T) {
	text := []rune("0123456789")
	for _, tc := range []struct {
		width    int
		start    int
		mustShow int
		shown    string
		anchor   int
	}{
		{6, 1, 7, "..67..", 4},
		{12, 1, 7, "123456789", 1},
		{6, 0, 6, "..56..", 3},
		{8, 0, 4, "012345..", 0},
		{10, 0, 9, "0123456789", 0},
		{6, 20, 0, "", 10},
	} {
		shown, anchor := reshape(text, tc.width, tc.start, tc.mustShow)
		if string(shown) != tc.shown || anchor != tc.anchor {
			t.Errorf("reshape(%d, %d, %d) = (%q, %d), expected (%q, %d)",
				tc.width, tc.start, tc.mustShow, string(shown), anchor, tc.shown, tc.anchor)
		}
	}
}

// The trailing marker is added even when only the left side was cut
func TestReshapeTrailingMarker(t *testing.T) {
	shown, anchor := reshape([]rune("0123456789"), 6, 0, 9)
	if string(shown) != "..89.." || anchor != 6 {
		t.Errorf("(%q, %d)", string(shown), anchor)
	}
}

func TestReshapeWide(t *testing.T) {
	text := []rune("한글한글한글")
	shown, anchor := reshape(text, 6, 0, 0)
	if string(shown) != "한글.." || anchor != 0 {
		t.Errorf("(%q, %d)", string(shown), anchor)
	}
	if width := displayWidth(shown); width > 6 {
		t.Errorf("%q does not fit: %d", string(shown), width)
	}
}

func TestReshapeDegenerateWidth(t *testing.T) {
	for _, width := range []int{-3, 0, 1, 2} {
		shown, anchor := reshape([]rune("0123456789"), width, 0, 3)
		if anchor < -2 || anchor > 10 || len(shown) < len(ellipsis) {
			t.Errorf("width %d: (%q, %d)", width, string(shown), anchor)
		}
	}
}
