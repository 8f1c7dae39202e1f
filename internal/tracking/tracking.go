package tracking

import (
	"fmt"
	"net/url"
	"strings"
)

// Params are the attribution parameters appended to landing page links.
type Params struct {
	Source   string `json:"utm_source,omitempty"`
	Medium   string `json:"utm_medium,omitempty"`
	Campaign string `json:"utm_campaign,omitempty"`
	Content  string `json:"utm_content,omitempty"`
	Ref      string `json:"ref,omitempty"`
}

func (p Params) pairs() [][2]string {
	return [][2]string{
		{"utm_source", p.Source},
		{"utm_medium", p.Medium},
		{"utm_campaign", p.Campaign},
		{"utm_content", p.Content},
		{"ref", p.Ref},
	}
}

func (p Params) IsEmpty() bool {
	return p == Params{}
}

// Parse reads tracking parameters from a query; missing or empty values stay empty.
func Parse(q url.Values) Params {
	return Params{
		Source:   q.Get("utm_source"),
		Medium:   q.Get("utm_medium"),
		Campaign: q.Get("utm_campaign"),
		Content:  q.Get("utm_content"),
		Ref:      q.Get("ref"),
	}
}

// BuildURL sets every non-empty parameter on baseURL, replacing existing values.
func BuildURL(baseURL string, p Params) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", baseURL)
	}

	q := u.Query()
	for _, kv := range p.pairs() {
		if kv[1] != "" {
			q.Set(kv[0], kv[1])
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// LandingURL is the public landing page address of a content package.
func LandingURL(publicBaseURL string, contentPackageID int64, p Params) (string, error) {
	base := fmt.Sprintf("%s/landing/%d", strings.TrimRight(publicBaseURL, "/"), contentPackageID)
	return BuildURL(base, p)
}
