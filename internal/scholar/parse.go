// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"
)

var (
	// Leading "[PDF]", "[HTML]", "[CITATION][C]" markers in result titles.
	titleTagRe = regexp.MustCompile(`^(\[[^\]]*\]\s*)+`)
	yearRe     = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})\b`)
	digitsRe   = regexp.MustCompile(`\d[\d,.]*`)
)

// parsePublication maps one search result block to a Publication.
func parsePublication(e *colly.HTMLElement) Publication {
	p := Publication{
		Title:    cleanText(e.ChildText("h3.gs_rt a")),
		PubURL:   e.ChildAttr("h3.gs_rt a", "href"),
		Abstract: cleanText(e.ChildText("div.gs_rs")),
		URL:      e.ChildAttr("div.gs_ggs a", "href"),
	}
	if p.Title == "" {
		p.Title = cleanText(titleTagRe.ReplaceAllString(cleanText(e.ChildText("h3.gs_rt")), ""))
	}
	if p.Title == "" {
		p.Title = "Unknown"
	}
	if p.URL == "" {
		p.URL = e.ChildAttr("div.gs_or_ggsm a", "href")
	}

	p.Authors, p.Year = parseByline(e.ChildText("div.gs_a"))

	e.ForEach("div.gs_fl a", func(_ int, link *colly.HTMLElement) {
		if text := cleanText(link.Text); strings.HasPrefix(text, "Cited by") {
			p.Citations = parseCount(text)
		}
	})
	return p
}

// parseByline splits the green "authors - venue, year - host" line.
func parseByline(line string) (authors []string, year string) {
	authors = []string{}
	line = cleanText(line)
	if line == "" {
		return authors, ""
	}

	segments := strings.Split(line, " - ")
	for _, name := range strings.Split(segments[0], ",") {
		name = strings.TrimSpace(strings.Trim(strings.TrimSpace(name), "…"))
		if name != "" {
			authors = append(authors, name)
		}
	}
	if len(segments) > 1 {
		year = yearRe.FindString(segments[1])
	}
	return authors, year
}

// parseAuthorHit maps one author search card to an Author. Search cards carry
// no h-index or i10-index; those stay 0.
func parseAuthorHit(e *colly.HTMLElement) Author {
	a := Author{
		Name:        cleanText(e.ChildText("h3.gs_ai_name")),
		Affiliation: cleanText(e.ChildText("div.gs_ai_aff")),
		EmailDomain: emailDomain(e.ChildText("div.gs_ai_eml")),
		Citations:   parseCount(e.ChildText("div.gs_ai_cby")),
		ScholarID:   userParam(e.ChildAttr("h3.gs_ai_name a", "href")),
		Interests:   []string{},
	}
	if a.Name == "" {
		a.Name = "Unknown"
	}
	e.ForEach("a.gs_ai_one_int", func(_ int, el *colly.HTMLElement) {
		if t := cleanText(el.Text); t != "" {
			a.Interests = append(a.Interests, t)
		}
	})
	return a
}

// parseProfileHeader fills name, affiliation, email domain and interests
// from the profile header block.
func parseProfileHeader(e *colly.HTMLElement, a *Author) {
	a.Name = cleanText(e.ChildText("#gsc_prf_in"))
	e.ForEach("div.gsc_prf_il", func(i int, el *colly.HTMLElement) {
		if i == 0 {
			a.Affiliation = cleanText(el.Text)
		}
	})
	a.EmailDomain = emailDomain(e.ChildText("#gsc_prf_ivh"))
	e.ForEach("a.gsc_prf_inta", func(_ int, el *colly.HTMLElement) {
		if t := cleanText(el.Text); t != "" {
			a.Interests = append(a.Interests, t)
		}
	})
}

// parseProfileStats reads the "All" column of the citation metrics table.
func parseProfileStats(e *colly.HTMLElement, a *Author) {
	e.ForEach("tbody tr", func(_ int, row *colly.HTMLElement) {
		label := strings.ToLower(cleanText(row.ChildText("td.gsc_rsb_sc1")))
		var value int
		row.ForEach("td.gsc_rsb_std", func(i int, cell *colly.HTMLElement) {
			if i == 0 {
				value = parseCount(cell.Text)
			}
		})
		switch {
		case strings.HasPrefix(label, "citations"):
			a.Citations = value
		case strings.HasPrefix(label, "h-index"):
			a.HIndex = value
		case strings.HasPrefix(label, "i10-index"):
			a.I10Index = value
		}
	})
}

// emailDomain turns "Verified email at mit.edu - Homepage" into "mit.edu".
func emailDomain(text string) string {
	text = cleanText(text)
	const prefix = "Verified email at "
	if !strings.HasPrefix(text, prefix) {
		return ""
	}
	domain := strings.TrimPrefix(text, prefix)
	if i := strings.Index(domain, " "); i >= 0 {
		domain = domain[:i]
	}
	return domain
}

// userParam extracts the user= query parameter of a profile link.
func userParam(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("user")
}

// parseCount returns the first number in text, ignoring thousands
// separators. Text without digits counts as 0.
func parseCount(text string) int {
	m := digitsRe.FindString(text)
	if m == "" {
		return 0
	}
	m = strings.NewReplacer(",", "", ".", "").Replace(m)
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// cleanText collapses runs of whitespace, including non-breaking spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
