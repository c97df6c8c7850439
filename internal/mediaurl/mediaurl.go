// Package mediaurl rewrites asset-host delivery URLs to request server-side
// transformed variants. All functions are pure string rewrites: no network,
// no caching, safe to call on every render pass.
package mediaurl

import (
	"net/url"
	"strings"
)

// assetHost is the delivery host of the platform's media CDN. URLs served
// from anywhere else (user-pasted links, third-party video hosts) pass
// through untouched.
const assetHost = "res.cloudinary.com"

// uploadMarker separates the delivery prefix from the asset path in a
// conforming delivery URL.
const uploadMarker = "/upload/"

// posterFrameDirective extracts a still frame one second into the video.
const posterFrameDirective = "so_1.0"

// Transform inserts a transformation directive (e.g. "w_720,q_auto,f_auto")
// into a conforming delivery URL. Non-conforming URLs are returned unchanged.
// Applying the same directive twice is a no-op: the rewritten URL still
// points at the same variant.
func Transform(rawURL, transformation string) string {
	if transformation == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || !isAssetURL(u) {
		return rawURL
	}

	prefix, rest, ok := strings.Cut(u.Path, uploadMarker)
	if !ok {
		return rawURL
	}
	if rest == transformation || strings.HasPrefix(rest, transformation+"/") {
		return rawURL
	}

	u.Path = prefix + uploadMarker + transformation + "/" + rest
	return u.String()
}

// PosterURL derives a still-image poster URL from a video delivery URL by
// applying a frame-extraction directive at a fixed 1s offset and swapping
// the file extension for an image one. It returns "" for non-conforming
// URLs so the caller can omit the poster entirely instead of requesting an
// image that is guaranteed to 404.
func PosterURL(videoURL string) string {
	u, err := url.Parse(videoURL)
	if err != nil || !isAssetURL(u) {
		return ""
	}
	if !strings.Contains(u.Path, uploadMarker) {
		return ""
	}

	transformed := Transform(videoURL, posterFrameDirective)
	return swapExtension(transformed, ".jpg")
}

func isAssetURL(u *url.URL) bool {
	host := u.Hostname()
	return host == assetHost || strings.HasSuffix(host, "."+assetHost)
}

// swapExtension replaces the extension of the final path segment, or appends
// ext when the segment has none. Query and fragment are preserved.
func swapExtension(rawURL, ext string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	slash := strings.LastIndex(u.Path, "/")
	segment := u.Path[slash+1:]
	if dot := strings.LastIndex(segment, "."); dot >= 0 {
		segment = segment[:dot]
	}
	u.Path = u.Path[:slash+1] + segment + ext
	return u.String()
}
