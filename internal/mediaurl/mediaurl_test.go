package mediaurl

import (
	"testing"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name           string
		rawURL         string
		transformation string
		want           string
	}{
		{
			"basic video transform",
			"https://res.cloudinary.com/vietvivu/video/upload/v1712/feed/halong.mp4",
			"w_720,q_auto,f_auto",
			"https://res.cloudinary.com/vietvivu/video/upload/w_720,q_auto,f_auto/v1712/feed/halong.mp4",
		},
		{
			"image transform",
			"https://res.cloudinary.com/vietvivu/image/upload/tours/sapa.jpg",
			"w_400,c_fill",
			"https://res.cloudinary.com/vietvivu/image/upload/w_400,c_fill/tours/sapa.jpg",
		},
		{
			"foreign host passes through",
			"https://cdn.example.com/videos/clip.mp4",
			"w_720",
			"https://cdn.example.com/videos/clip.mp4",
		},
		{
			"asset host without upload marker passes through",
			"https://res.cloudinary.com/vietvivu/raw/halong.mp4",
			"w_720",
			"https://res.cloudinary.com/vietvivu/raw/halong.mp4",
		},
		{
			"empty transformation is a no-op",
			"https://res.cloudinary.com/vietvivu/video/upload/v1/a.mp4",
			"",
			"https://res.cloudinary.com/vietvivu/video/upload/v1/a.mp4",
		},
		{
			"unparseable URL passes through",
			"://not a url",
			"w_720",
			"://not a url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform(tt.rawURL, tt.transformation)
			if got != tt.want {
				t.Errorf("Transform(%q, %q) = %q, want %q", tt.rawURL, tt.transformation, got, tt.want)
			}
		})
	}
}

func TestTransformAppliedTwiceDoesNotDuplicate(t *testing.T) {
	const raw = "https://res.cloudinary.com/vietvivu/video/upload/v1712/feed/halong.mp4"
	const directive = "w_720,q_auto"

	once := Transform(raw, directive)
	twice := Transform(once, directive)

	if twice != once {
		t.Errorf("second application changed the URL:\n first: %s\nsecond: %s", once, twice)
	}
}

func TestPosterURL(t *testing.T) {
	tests := []struct {
		name     string
		videoURL string
		want     string
	}{
		{
			"conforming video URL",
			"https://res.cloudinary.com/vietvivu/video/upload/v1712/feed/halong.mp4",
			"https://res.cloudinary.com/vietvivu/video/upload/so_1.0/v1712/feed/halong.jpg",
		},
		{
			"webm extension swapped",
			"https://res.cloudinary.com/vietvivu/video/upload/feed/street-food.webm",
			"https://res.cloudinary.com/vietvivu/video/upload/so_1.0/feed/street-food.jpg",
		},
		{
			"segment without extension gains one",
			"https://res.cloudinary.com/vietvivu/video/upload/feed/clip",
			"https://res.cloudinary.com/vietvivu/video/upload/so_1.0/feed/clip.jpg",
		},
		{
			"foreign host yields empty",
			"https://www.youtube.com/watch?v=abc123",
			"",
		},
		{
			"asset host without marker yields empty",
			"https://res.cloudinary.com/vietvivu/raw/halong.mp4",
			"",
		},
		{
			"empty input yields empty",
			"",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PosterURL(tt.videoURL)
			if got != tt.want {
				t.Errorf("PosterURL(%q) = %q, want %q", tt.videoURL, got, tt.want)
			}
		})
	}
}

func TestPosterURLNeverReturnsVideoExtension(t *testing.T) {
	inputs := []string{
		"https://res.cloudinary.com/vietvivu/video/upload/v1/a.mp4",
		"https://res.cloudinary.com/vietvivu/video/upload/nested/path/b.mov",
	}
	for _, in := range inputs {
		got := PosterURL(in)
		if got == "" {
			t.Fatalf("PosterURL(%q) unexpectedly empty", in)
		}
		for _, ext := range []string{".mp4", ".mov", ".webm"} {
			if len(got) >= len(ext) && got[len(got)-len(ext):] == ext {
				t.Errorf("PosterURL(%q) = %q still ends in %s", in, got, ext)
			}
		}
	}
}
