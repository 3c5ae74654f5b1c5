// Package textscan tokenizes free-text event descriptions.
//
// The grammar is deliberately small:
//
//	url-token     = "http" ["s"] "://" 1*<any non-whitespace>
//	hashtag-token = "#" 1*word-character
//
// URL tokens become labeled links in order of first appearance, duplicates
// preserved. Hashtag tokens are uppercased; the reserved classification
// markers (IRL, VR, VIRTUAL, RADIO) are consumed by the type classifier
// and never surface as tags.
package textscan

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/okian/gigfeed/internal/domain/model"
)

// Token patterns, compiled once.
var (
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
)

// reservedMarkers are hashtags owned by the type classifier.
var reservedMarkers = map[string]struct{}{
	"IRL":     {},
	"VR":      {},
	"VIRTUAL": {},
	"RADIO":   {},
}

// platformLabel maps a hostname substring to its display label. Checked in
// order; extend by appending.
type platformLabel struct {
	hostPart string
	label    string
}

var platformLabels = []platformLabel{
	{"youtube.com", "YouTube"},
	{"youtu.be", "YouTube"},
	{"twitch.tv", "Twitch"},
	{"spotify.com", "Spotify"},
	{"soundcloud.com", "SoundCloud"},
	{"mixcloud.com", "Mixcloud"},
	{"bandcamp.com", "Bandcamp"},
	{"tiktok.com", "TikTok"},
	{"facebook.com", "Facebook"},
	{"instagram.com", "Instagram"},
}

// genericLabel is used when a URL does not parse at all.
const genericLabel = "Link"

// radioLabel is used for radio stream hosts.
const radioLabel = "Radio"

// Option applies a configuration option to the Scanner.
type Option func(*Scanner)

// WithRadioDomains sets the hostnames treated as radio streams in addition
// to any host containing the substring "radio".
func WithRadioDomains(domains []string) Option {
	return func(s *Scanner) {
		if len(domains) > 0 {
			s.radioDomains = domains
		}
	}
}

// Result holds the tokens extracted from one description.
type Result struct {
	Links []model.Link
	Tags  []string
}

// Scanner extracts links and tags from event descriptions.
type Scanner struct {
	radioDomains []string
}

// New creates a Scanner with configuration options.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		radioDomains: []string{
			"hpsbassline.myftp.biz",
			"azura.hpsbassline.myftp.biz",
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan tokenizes text. Absent text yields empty (non-nil) token lists so
// output marshals as [] rather than null.
func (s *Scanner) Scan(text string) Result {
	res := Result{
		Links: []model.Link{},
		Tags:  []string{},
	}
	if text == "" {
		return res
	}

	for _, raw := range urlPattern.FindAllString(text, -1) {
		res.Links = append(res.Links, model.Link{URL: raw, Label: s.Label(raw)})
	}

	for _, m := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		tag := strings.ToUpper(m[1])
		if _, reserved := reservedMarkers[tag]; reserved {
			continue
		}
		res.Tags = append(res.Tags, tag)
	}
	return res
}

// Label derives a human-readable label for a link URL: known platforms by
// hostname substring, radio hosts, then the bare hostname with a leading
// "www." stripped. A URL without a parseable hostname gets a generic label.
func (s *Scanner) Label(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return genericLabel
	}
	host := strings.ToLower(u.Hostname())

	for _, p := range platformLabels {
		if strings.Contains(host, p.hostPart) {
			return p.label
		}
	}

	if strings.Contains(host, "radio") {
		return radioLabel
	}
	for _, d := range s.radioDomains {
		if strings.Contains(host, d) {
			return radioLabel
		}
	}

	return strings.TrimPrefix(host, "www.")
}
