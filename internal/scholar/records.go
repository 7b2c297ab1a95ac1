// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"encoding/json"

	"github.com/pdiddy/scholar-tool/internal/cite"
)

// Publication is one Google Scholar search result. Empty strings mean the
// field was absent on the result page.
type Publication struct {
	Title     string   `json:"title" yaml:"title"`
	Authors   []string `json:"authors" yaml:"authors"`
	Year      string   `json:"year" yaml:"year,omitempty"`
	Abstract  string   `json:"abstract" yaml:"abstract,omitempty"`
	Citations int      `json:"citations" yaml:"citations"`
	// URL is the direct download (eprint) link.
	URL string `json:"url" yaml:"url,omitempty"`
	// PubURL is the publisher landing page.
	PubURL string `json:"pub_url" yaml:"pub_url,omitempty"`
}

// MarshalJSON writes every key in declaration order, with null for absent
// values.
func (p Publication) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title     string   `json:"title"`
		Authors   []string `json:"authors"`
		Year      *string  `json:"year"`
		Abstract  *string  `json:"abstract"`
		Citations int      `json:"citations"`
		URL       *string  `json:"url"`
		PubURL    *string  `json:"pub_url"`
	}{
		Title:     p.Title,
		Authors:   p.Authors,
		Year:      nullable(p.Year),
		Abstract:  nullable(p.Abstract),
		Citations: p.Citations,
		URL:       nullable(p.URL),
		PubURL:    nullable(p.PubURL),
	})
}

// Work returns the citation view of the publication. Scholar results carry
// no publisher, so citations render "Publisher unknown".
func (p Publication) Work() cite.Work {
	return cite.Work{
		Authors: p.Authors,
		Year:    p.Year,
		Title:   p.Title,
	}
}

// Author is a Google Scholar author profile or author search hit.
type Author struct {
	Name        string   `json:"name" yaml:"name"`
	Affiliation string   `json:"affiliation" yaml:"affiliation,omitempty"`
	EmailDomain string   `json:"email_domain" yaml:"email_domain,omitempty"`
	Citations   int      `json:"citations" yaml:"citations"`
	HIndex      int      `json:"h_index" yaml:"h_index"`
	I10Index    int      `json:"i10_index" yaml:"i10_index"`
	Interests   []string `json:"interests" yaml:"interests"`
	ScholarID   string   `json:"scholar_id" yaml:"scholar_id,omitempty"`
}

func (a Author) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name        string   `json:"name"`
		Affiliation *string  `json:"affiliation"`
		EmailDomain *string  `json:"email_domain"`
		Citations   int      `json:"citations"`
		HIndex      int      `json:"h_index"`
		I10Index    int      `json:"i10_index"`
		Interests   []string `json:"interests"`
		ScholarID   *string  `json:"scholar_id"`
	}{
		Name:        a.Name,
		Affiliation: nullable(a.Affiliation),
		EmailDomain: nullable(a.EmailDomain),
		Citations:   a.Citations,
		HIndex:      a.HIndex,
		I10Index:    a.I10Index,
		Interests:   a.Interests,
		ScholarID:   nullable(a.ScholarID),
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
