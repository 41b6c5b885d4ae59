package jobsearch

import (
	"fmt"
	"strings"
)

// JobRecord is one listing as returned by the scraping actor. Every field is optional.
type JobRecord map[string]any

func (r JobRecord) str(key string) string {
	if r == nil {
		return ""
	}
	switch v := r[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Title is the job title, or "" when absent.
func (r JobRecord) Title() string { return r.str("title") }

// CompanyName is the hiring company, or "" when absent.
func (r JobRecord) CompanyName() string { return r.str("companyName") }

// Location is the listing location, or "" when absent.
func (r JobRecord) Location() string { return r.str("location") }

// Link is the listing URL, or "" when absent.
func (r JobRecord) Link() string { return r.str("link") }

// Query is a job search request. Zero fields take the client defaults.
type Query struct {
	Title    string
	Location string
	Rows     int
}

// runInput is the actor input document.
type runInput struct {
	Title      string     `json:"title"`
	Location   string     `json:"location"`
	Rows       int        `json:"rows"`
	SortBy     string     `json:"sortby"`
	Freshness  string     `json:"freshness"`
	Experience string     `json:"experience"`
	Proxy      proxyInput `json:"proxy"`
}

type proxyInput struct {
	UseApifyProxy    bool     `json:"useApifyProxy"`
	ApifyProxyGroups []string `json:"apifyProxyGroups"`
}

func newRunInput(q Query) runInput {
	return runInput{
		Title:      q.Title,
		Location:   q.Location,
		Rows:       q.Rows,
		SortBy:     "relevance",
		Freshness:  "all",
		Experience: "all",
		Proxy: proxyInput{
			UseApifyProxy:    true,
			ApifyProxyGroups: []string{"RESIDENTIAL"},
		},
	}
}
