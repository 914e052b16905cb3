package prompt

import (
	"strings"
	"testing"
)

func TestFormatStyles(t *testing.T) {
	got := FormatStyles([]string{"q_version", "fluffy"})

	if !strings.Contains(got, "Q版漫画") || !strings.Contains(got, "毛绒质感") {
		t.Errorf("expected both style names, got %q", got)
	}
	if !strings.Contains(got, "大头") {
		t.Errorf("expected style features, got %q", got)
	}
	if !strings.Contains(got, "; ") {
		t.Errorf("expected styles joined with '; ', got %q", got)
	}
}

func TestFormatStylesSkipsUnknown(t *testing.T) {
	got := FormatStyles([]string{"not_a_style", "pixel"})
	if strings.Contains(got, "not_a_style") {
		t.Errorf("unknown id must be skipped, got %q", got)
	}
	if !strings.Contains(got, "像素风") {
		t.Errorf("known id must survive, got %q", got)
	}
}

func TestFormatStylesFallback(t *testing.T) {
	for _, ids := range [][]string{nil, {}, {"bogus"}} {
		if got := FormatStyles(ids); got != "可爱风格" {
			t.Errorf("FormatStyles(%v) = %q, want fallback", ids, got)
		}
	}
}

func TestFormatSize(t *testing.T) {
	if got := FormatSize("square_medium"); got != "中正方形 1024x1024 (1:1)" {
		t.Errorf("unexpected size description %q", got)
	}
}

func TestFormatSizeUnknown(t *testing.T) {
	if got := FormatSize("giant"); got != "" {
		t.Errorf("unknown size must render blank, got %q", got)
	}
}
