package metadata

import (
	"net/url"
	"strings"
)

// AssetURL joins an archive asset path below base, escaping every segment.
// Segments may themselves contain slashes; empty segments are dropped.
//
//	AssetURL("data/video", "abc", "timeline", "slide 1.png") == "data/video/abc/timeline/slide%201.png"
func AssetURL(base string, segments ...string) string {
	parts := []string{strings.TrimRight(base, "/")}
	if parts[0] == "" {
		parts = parts[:0]
	}

	for _, seg := range segments {
		for _, p := range strings.Split(seg, "/") {
			if p == "" {
				continue
			}
			parts = append(parts, url.PathEscape(p))
		}
	}
	return strings.Join(parts, "/")
}
