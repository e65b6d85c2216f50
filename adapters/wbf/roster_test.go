package wbf

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoster() *Roster {
	r := New()
	r.add("John Smith", 0, 0)
	r.add("John (Smith) Doyle", 0, 0)
	r.add("Liam A. R. Smith", 0, 0)
	r.add("Liam 'Ashton' R. Smith", 0, 0)
	r.add("Jeff K. M. Q. Doyle", 0, 0)
	r.add("Jeff K. L. Doyle", 0, 0)
	return r
}

func TestNormalize(t *testing.T) {
	roster := testRoster()
	tests := []struct {
		name string
		want string
	}{
		{"John Smith", "John Smith,0,0"},
		{"John Smith Doyle", "John (Smith) Doyle,0,0"},
		// Two entries match equally well.
		{"Liam A. R. Smith", NoMatch},
		{"Liam Ashton R. Smith", "Liam 'Ashton' R. Smith,0,0"},
		// An initial may stand in for a name; fewer leftover roster
		// initials wins.
		{"Jeff K. Doyle", "Jeff K. L. Doyle,0,0"},
		// No full name matches.
		{"Q. Zorro", NoMatch},
		{"", NoMatch},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roster.Normalize(tt.name), "name %q", tt.name)
	}
}

func TestNormalizeMemoizes(t *testing.T) {
	roster := testRoster()
	first := roster.Normalize("John Smith")
	// Entries added after the first lookup must not change the answer.
	roster.add("John Smith Extra", 9, 9)
	assert.Equal(t, first, roster.Normalize("John Smith"))
}

const rankingRowTemplate = `<tr class="%s">
<td>%d</td><td>C%d</td><td>%s</td><td>%s</td><td>XX</td><td>%s</td><td>%s</td>
</tr>`

func TestLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><table>")
		if r.URL.Query().Get("offset") == "0" {
			fmt.Fprintf(w, rankingRowTemplate, "MainRows", 1, 1, "John", "Smith", "150.5", "12")
			fmt.Fprintf(w, rankingRowTemplate, "deceased", 2, 2, "Liam A.", "Smith", "90", "3.5")
		}
		fmt.Fprint(w, "</table></body></html>")
	}))
	defer srv.Close()

	roster := New()
	roster.url = srv.URL
	roster.maxOffset = 100
	roster.httpc = srv.Client()

	require.NoError(t, roster.Load(context.Background()))
	require.Len(t, roster.entries, 2)

	assert.Equal(t, "John Smith,150.5,12", roster.entries[0].key)
	assert.Equal(t, []string{"JOHN", "SMITH"}, roster.entries[0].names)

	assert.Equal(t, "Liam A. Smith,90,3.5", roster.entries[1].key)
	assert.Equal(t, []string{"LIAM", "SMITH"}, roster.entries[1].names)
	assert.Equal(t, []string{"A"}, roster.entries[1].initials)

	assert.Equal(t, "John Smith,150.5,12", roster.Normalize("John Smith"))
}
