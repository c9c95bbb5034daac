package media

import "testing"

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Some nice title":      "some-nice-title",
		"IMG_1285":             "img_1285",
		"  --Hello,  World!! ": "hello-world",
		"Café Crème":           "cafe-creme",
		"a/b\\c":               "a-b-c",
		"___":                  "",
		"trailing_":            "trailing",
		"":                     "",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBaseNameFallsBack(t *testing.T) {
	if got := BaseName("Some nice title", "/x/IMG_1285.JPG"); got != "some-nice-title" {
		t.Fatalf("title slug: got %q", got)
	}
	if got := BaseName("", "/x/IMG_1285.JPG"); got != "img_1285" {
		t.Fatalf("stem slug: got %q", got)
	}
	if got := BaseName("!!!", "/x/IMG_1285.JPG"); got != "img_1285" {
		t.Fatalf("empty title slug should fall back to stem, got %q", got)
	}
	if got := BaseName("", "/x/???.jpg"); got != fallbackSlug {
		t.Fatalf("expected fallback slug, got %q", got)
	}
}

func TestExtension(t *testing.T) {
	if got := Extension("/x/IMG_1285.JPG"); got != ".jpg" {
		t.Fatalf("got %q", got)
	}
	if got := Extension("/x/README"); got != "" {
		t.Fatalf("got %q", got)
	}
}
