package platform

import (
	"net/url"
	"regexp"
	"strings"
)

// videoIDPattern matches a canonical YouTube video ID
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,16}$`)

// youtubeHosts are accepted hosts for video URLs
var youtubeHosts = []string{
	"youtube.com",
	"www.youtube.com",
	"m.youtube.com",
	"music.youtube.com",
	"youtu.be",
}

// pathPrefixes are URL path forms that carry the video ID as the next segment
var pathPrefixes = []string{"/shorts/", "/embed/", "/live/", "/v/"}

// IsVideoURL reports whether the raw string looks like a YouTube video URL
// or a bare video ID.
func IsVideoURL(raw string) bool {
	_, ok := ExtractVideoID(raw)
	return ok
}

// ExtractVideoID pulls the video ID out of the supported YouTube URL forms
// (watch, youtu.be, shorts, embed, live) or accepts a bare video ID.
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	// Bare video ID, no URL parts at all
	if !strings.ContainsAny(raw, "./?&") && videoIDPattern.MatchString(raw) {
		return raw, true
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	valid := false
	for _, h := range youtubeHosts {
		if host == h {
			valid = true
			break
		}
	}
	if !valid {
		return "", false
	}

	if host == "youtu.be" {
		id := strings.Trim(u.Path, "/")
		if videoIDPattern.MatchString(id) {
			return id, true
		}
		return "", false
	}

	if u.Path == "/watch" {
		id := u.Query().Get("v")
		if videoIDPattern.MatchString(id) {
			return id, true
		}
		return "", false
	}

	for _, prefix := range pathPrefixes {
		if strings.HasPrefix(u.Path, prefix) {
			rest := strings.TrimPrefix(u.Path, prefix)
			id := strings.SplitN(strings.Trim(rest, "/"), "/", 2)[0]
			if videoIDPattern.MatchString(id) {
				return id, true
			}
			return "", false
		}
	}

	return "", false
}
