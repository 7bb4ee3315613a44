package domain

import (
	"slices"
	"testing"
)

func TestIsPriorityTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want bool
	}{
		{"news1", true},
		{"news2", true},
		{"ichi1", true},
		{"ichi2", true},
		{"spec1", true},
		{"spec2", true},
		{"gai1", true},
		{"gai2", true},
		{"nf01", true},
		{"nf48", true},
		{"news3", false},
		{"nf1", false},
		{"nf001", false},
		{"uk", false},
		{"", false},
		{" news1", false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			if got := IsPriorityTag(tt.tag); got != tt.want {
				t.Errorf("IsPriorityTag(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestJoinSplitTags(t *testing.T) {
	t.Parallel()

	if got := JoinTags(nil); got != "" {
		t.Errorf("JoinTags(nil) = %q, want empty", got)
	}
	if got := JoinTags([]string{"col", "uk"}); got != "col,uk" {
		t.Errorf("JoinTags = %q, want %q", got, "col,uk")
	}

	if got := SplitTags(""); got != nil {
		t.Errorf("SplitTags(\"\") = %v, want nil", got)
	}
	if got := SplitTags("col,,uk,"); !slices.Equal(got, []string{"col", "uk"}) {
		t.Errorf("SplitTags dropped wrong items: %v", got)
	}
	if got := SplitTags(","); got != nil {
		t.Errorf("SplitTags(\",\") = %v, want nil", got)
	}
}
