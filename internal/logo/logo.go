// Package logo guesses a company logo URL for a subscription name by
// probing logo.clearbit.com over a handful of likely domains, falling
// back to a generated avatar. Lookups are best effort and bounded by a
// timeout; callers create plans without a logo when the lookup fails.
package logo

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	// Marketing words that hurt domain guessing ("Netflix Premium Plan").
	fillerWords    = regexp.MustCompile(`(?i)\b(subscription|plan|premium|basic|standard|pro|plus)\b`)
	nonAlphanum    = regexp.MustCompile(`[^a-z0-9]`)
	domainSuffixes = []string{".com", ".io", ".co", ".org", ".net"}
)

type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Search returns the first probeable clearbit logo URL for the name, or
// an avatar-placeholder URL when no domain responds. The returned URL is
// never empty for a non-empty name.
func (c *Client) Search(name string) string {
	cleaned, domain := slugify(name)

	if domain != "" {
		for _, suffix := range domainSuffixes {
			candidate := fmt.Sprintf("https://logo.clearbit.com/%s%s", domain, suffix)
			if c.probe(candidate) {
				return candidate
			}
		}
	}

	firstLetter := "K"
	if cleaned != "" {
		r, _ := utf8.DecodeRuneInString(cleaned)
		firstLetter = strings.ToUpper(string(r))
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(firstLetter) +
		"&background=random&color=fff&size=128"
}

// slugify strips marketing filler from the subscription name and reduces
// the remainder to a bare domain label.
func slugify(name string) (cleaned, domain string) {
	cleaned = strings.TrimSpace(fillerWords.ReplaceAllString(name, ""))
	domain = nonAlphanum.ReplaceAllString(strings.ToLower(cleaned), "")
	return cleaned, domain
}

func (c *Client) probe(logoURL string) bool {
	resp, err := c.http.Head(logoURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
