// Package wbf resolves player names against the World Bridge Federation
// all-time ranking table. The scrape depends on the layout of the ranking
// page and is not robust to changes in it.
package wbf

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	apperrors "bridgelens/internal/errors"
)

const (
	rankingURL     = "http://www.wbfmasterpoints.com/AllTimerankingOpen.asp"
	maxOffset      = 10240
	recordsPerPage = 20
)

// NoMatch is the shared key for names that resolve to no roster entry.
const NoMatch = ",-1,-1"

// entry is one roster row, with its name components split for matching.
type entry struct {
	// key is "Full Name,masterpoints,placingpoints".
	key string
	// names and initials are the uppercased name components, in listed
	// order, nicknames unquoted.
	names    []string
	initials []string
}

// Roster implements the Roster interface against the WBF ranking table.
type Roster struct {
	url        string
	maxOffset  int
	pageSize   int
	httpc      *http.Client
	entries    []entry

	mu   sync.Mutex
	memo map[string]string
}

// New creates a roster backed by the WBF all-time open ranking.
func New() *Roster {
	return NewWithURL(rankingURL)
}

// NewWithURL creates a roster scraping an alternative ranking endpoint
// with the same page layout, such as a local mirror.
func NewWithURL(url string) *Roster {
	return &Roster{
		url:       url,
		maxOffset: maxOffset,
		pageSize:  recordsPerPage,
		httpc:     &http.Client{Timeout: 60 * time.Second},
		memo:      make(map[string]string),
	}
}

// Load scrapes every page of the ranking table. Ranked players appear as
// rows of class MainRows or deceased; the cells are rank, code, first
// name, last name, country, masterpoints, placing points.
func (r *Roster) Load(ctx context.Context) error {
	for offset := 0; offset < r.maxOffset; offset += r.pageSize {
		rows, err := r.fetchPage(ctx, offset)
		if err != nil {
			return apperrors.Wrapf(err, "failed to fetch roster page at offset %d", offset)
		}
		if rows == 0 {
			// Past the last ranked player.
			break
		}
	}
	return nil
}

func (r *Roster) fetchPage(ctx context.Context, offset int) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url+"?offset="+strconv.Itoa(offset), nil)
	if err != nil {
		return 0, err
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("ranking page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, err
	}

	rows := 0
	doc.Find("tr.MainRows, tr.deceased").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 7 {
			return
		}
		first := strings.TrimSpace(cells.Eq(2).Text())
		last := strings.TrimSpace(cells.Eq(3).Text())
		mp, _ := strconv.ParseFloat(strings.TrimSpace(cells.Eq(5).Text()), 64)
		pp, _ := strconv.ParseFloat(strings.TrimSpace(cells.Eq(6).Text()), 64)
		r.add(first+" "+last, mp, pp)
		rows++
	})
	return rows, nil
}

// add registers one roster row.
func (r *Roster) add(fullName string, mp, pp float64) {
	e := entry{key: fullName + "," + formatPoints(mp) + "," + formatPoints(pp)}
	for _, component := range strings.Split(fullName, " ") {
		switch {
		case isInitial(component):
			e.initials = append(e.initials, strings.ToUpper(component[:1]))
		case isNickname(component):
			e.names = append(e.names, strings.ToUpper(component[1:len(component)-1]))
		default:
			e.names = append(e.names, strings.ToUpper(component))
		}
	}
	r.entries = append(r.entries, e)
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// isInitial reports whether the component is an abbreviated name, "A.".
func isInitial(component string) bool {
	return len(component) == 2 && component[1] == '.'
}

// isNickname reports whether the component is quoted, "(Ashton)" or
// "'Ashton'".
func isNickname(component string) bool {
	if len(component) < 2 {
		return false
	}
	if component[0] == '(' && component[len(component)-1] == ')' {
		return true
	}
	return component[0] == '\'' && component[len(component)-1] == '\''
}
