package domain

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var linkPattern = regexp.MustCompile(`https?://[^\s]+`)

// EmbedURL rewrites known video links to their embeddable form; any other
// link, including one that does not parse, is returned verbatim.
func EmbedURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	host := strings.ToLower(u.Hostname())

	if strings.Contains(host, "youtube.com") {
		if v := u.Query().Get("v"); v != "" {
			return "https://www.youtube.com/embed/" + v
		}
		parts := strings.Split(u.Path, "/")
		for i, p := range parts {
			if p == "embed" && i+1 < len(parts) && parts[i+1] != "" {
				return "https://www.youtube.com/embed/" + parts[i+1]
			}
		}
	}
	if host == "youtu.be" {
		if id := strings.TrimPrefix(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	}
	return raw
}

// ExtractLink decodes data best-effort, drops NUL bytes and returns the
// first http(s) link found.
func ExtractLink(data []byte) (string, bool) {
	data = bytes.ReplaceAll(data, []byte{0}, nil)
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	m := linkPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}
