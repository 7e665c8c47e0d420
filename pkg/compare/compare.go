// Package compare measures how well a word search corrects the misspellings
// of a corpus, and how often it wrongly corrects real words.
package compare

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/pkg/corpus"
	"github.com/bastiangx/wordfix/pkg/predict"
	"github.com/bastiangx/wordfix/pkg/search"
)

// Options tune the success criteria.
type Options struct {
	// AcceptSecondHit also counts a correction found in second place.
	AcceptSecondHit bool
	// Logger receives warnings about the corpus. Defaults to a "compare"
	// component logger.
	Logger *log.Logger
}

// Failure is a single wrong answer.
type Failure struct {
	Query         string
	Expected      string
	Found         []string
	FalsePositive bool
}

func (f Failure) String() string {
	if f.FalsePositive {
		return fmt.Sprintf("false-positive: found '%s' by search for '%s'", f.Found[0], f.Query)
	}
	s := fmt.Sprintf("'%s' not found by search for %s", f.Expected, f.Query)
	switch len(f.Found) {
	case 0:
	case 1:
		s += fmt.Sprintf(", found '%s' instead", f.Found[0])
	default:
		s += fmt.Sprintf(", found '%s' and '%s' instead", f.Found[0], f.Found[1])
	}
	return s
}

// Report is the outcome of one run.
type Report struct {
	Backend    string
	Indexed    int
	Distinct   int // distinct words, if the backend reports them
	IndexTime  time.Duration
	Searches   int
	SearchTime time.Duration

	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int

	Failures []Failure
}

func (r Report) Success() int { return r.TruePositives + r.TrueNegatives }
func (r Report) Fail() int    { return r.FalsePositives + r.FalseNegatives }

// Accuracy is the share of successful searches in percent.
func (r Report) Accuracy() float64 {
	return percent(r.Success(), r.Searches)
}

func (r Report) SearchesPerMs() float64 {
	ms := float64(r.SearchTime) / float64(time.Millisecond)
	if ms == 0 {
		return 0
	}
	return float64(r.Searches) / ms
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return 100 * float64(n) / float64(of)
}

// candidates maps a query to the word it belongs to.
type candidates map[string]string

func (c candidates) add(r corpus.Record) {
	for _, v := range r.Variants {
		c[v] = r.Word
	}
}

// queries returns the keys in sorted order so runs are repeatable.
func (c candidates) queries() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Run indexes the corpus words into ws and then searches every variant.
// Variants of matching records must be corrected to their word; variants of
// non-matching records are real words that must not be.
func Run(ctx context.Context, ws search.WordSearch, c *corpus.Corpus, opts Options) (Report, error) {
	lg := opts.Logger
	if lg == nil {
		lg = logger.New("compare")
	}
	report := Report{Backend: ws.String()}

	tp, fp := candidates{}, candidates{}
	start := time.Now()
	for _, r := range c.Records {
		if r.Match {
			tp.add(r)
		} else {
			if slices.Contains(r.Variants, r.Word) {
				lg.Warn("Record lists its own word as a false positive", "word", r.Word)
			}
			fp.add(r)
		}
		if _, err := ws.Index(r.Word); err != nil {
			return report, err
		}
		report.Indexed++
	}
	report.IndexTime = time.Since(start)
	switch s := ws.(type) {
	case search.Sizer:
		report.Distinct = s.Len()
	case interface{ Stats() predict.Stats }:
		report.Distinct = s.Stats().Words
	}

	tpKeys := mapset.NewThreadUnsafeSet(tp.queries()...)
	if both := tpKeys.Intersect(mapset.NewThreadUnsafeSet(fp.queries()...)); both.Cardinality() > 0 {
		ambiguous := both.ToSlice()
		slices.Sort(ambiguous)
		lg.Warn("Queries listed as both misspelling and real word", "queries", strings.Join(ambiguous, ","))
	}

	start = time.Now()
	for _, query := range tp.queries() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		expected := tp[query]
		results := ws.FindSimilarWords(query)
		if isMatch(query, expected, results, opts.AcceptSecondHit) {
			report.TruePositives++
		} else {
			report.FalseNegatives++
			report.Failures = append(report.Failures, Failure{Query: query, Expected: expected, Found: results})
		}
		report.Searches++
	}
	for _, query := range fp.queries() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		expected := fp[query]
		results := ws.FindSimilarWords(query)
		if isMatch(query, expected, results, opts.AcceptSecondHit) && results[0] != query {
			report.FalsePositives++
			report.Failures = append(report.Failures, Failure{Query: query, Expected: expected, Found: results, FalsePositive: true})
		} else {
			report.TrueNegatives++
		}
		report.Searches++
	}
	report.SearchTime = time.Since(start)
	return report, nil
}

// isMatch is true when the first result is the expected word or the query
// itself, or optionally when the second result is the expected word.
func isMatch(query, expected string, results []string, acceptSecond bool) bool {
	if len(results) > 0 && (results[0] == expected || results[0] == query) {
		return true
	}
	return acceptSecond && len(results) > 1 && results[1] == expected
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Write prints the report in the layout of the comparison tool. Failures are
// listed first when withFailures is set.
func (r Report) Write(w io.Writer, withFailures bool) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Backend) + "\n")
	b.WriteString(strings.Repeat("-", 46) + "\n")
	if withFailures {
		for i, f := range r.Failures {
			fmt.Fprintf(&b, "%s\n", failStyle.Render(fmt.Sprintf("%d: %s", i, f)))
		}
		if len(r.Failures) > 0 {
			b.WriteString("\n")
		}
	}
	if r.Distinct > 0 {
		fmt.Fprintf(&b, "indexed %d words (%d distinct) in %dms\n", r.Indexed, r.Distinct, r.IndexTime.Milliseconds())
	} else {
		fmt.Fprintf(&b, "indexed %d words in %dms\n", r.Indexed, r.IndexTime.Milliseconds())
	}
	fmt.Fprintf(&b, "%d searches\n", r.Searches)
	fmt.Fprintf(&b, "%dms => %.3f searches/ms\n\n", r.SearchTime.Milliseconds(), r.SearchesPerMs())
	fmt.Fprintf(&b, "%d success / accuracy => %.2f%%\n", r.Success(), r.Accuracy())
	fmt.Fprintf(&b, "%d true-positives\n", r.TruePositives)
	fmt.Fprintf(&b, "%d true-negatives\n\n", r.TrueNegatives)
	fmt.Fprintf(&b, "%d fail => %.2f%%\n", r.Fail(), percent(r.Fail(), r.Searches))
	fmt.Fprintf(&b, "%d false-negatives\n", r.FalseNegatives)
	fmt.Fprintf(&b, "%d false-positives\n\n", r.FalsePositives)
	_, err := io.WriteString(w, b.String())
	return err
}
