// Package cli runs an interactive correction loop on the terminal, handy for
// trying out dictionaries and scoring settings.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/predict"
)

// Engine is the part of the predict engine the loop needs.
type Engine interface {
	Index(word string) (bool, error)
	Lookup(word string) []predict.SuggestItem
	Stats() predict.Stats
	String() string
}

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler reads one query per line and prints the suggestions.
// Lines starting with ":add " index the rest of the line, ":stats" prints
// the index size.
type InputHandler struct {
	engine       Engine
	minLength    int
	maxLength    int
	suggestLimit int
	noFilter     bool
	out          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine Engine, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		engine:       engine,
		minLength:    minLength,
		maxLength:    maxLength,
		suggestLimit: limit,
		noFilter:     noFilter,
	}
}

// Start runs the loop until in is exhausted. Output goes to out.
func (h *InputHandler) Start(in io.Reader, out io.Writer) error {
	h.out = logger.NewTo(out, "")
	h.out.Print("wordfix CLI")
	h.out.Print("type a word and press Enter to see corrections (Ctrl+D to exit):")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
	return scanner.Err()
}

func (h *InputHandler) handleInput(line string) {
	switch {
	case line == ":stats":
		st := h.engine.Stats()
		h.out.Printf("%s: %s words, %s keys, longest word %d",
			h.engine, utils.FormatCount(st.Words), utils.FormatCount(st.Keys), st.MaxLength)
		return
	case strings.HasPrefix(line, ":add "):
		word := strings.TrimSpace(strings.TrimPrefix(line, ":add "))
		if _, err := h.engine.Index(word); err != nil {
			log.Errorf("Indexing %q failed: %v", word, err)
			return
		}
		h.out.Printf("indexed '%s'", word)
		return
	}

	if !utils.IsValidLength(line, h.minLength, h.maxLength) {
		log.Errorf("Word length out of range [%d, %d]: %s", h.minLength, h.maxLength, line)
		return
	}
	if !h.noFilter && !utils.IsValidInput(line) {
		log.Infof("Skipping input: '%s'", line)
		return
	}

	query, mask := utils.CaptureCase(line)
	start := time.Now()
	suggestions := h.engine.Lookup(query)
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), query)

	if len(suggestions) == 0 {
		h.out.Printf("No corrections found for '%s'", line)
		return
	}
	if h.suggestLimit > 0 && len(suggestions) > h.suggestLimit {
		suggestions = suggestions[:h.suggestLimit]
	}

	h.out.Printf("Found %d corrections for '%s':", len(suggestions), line)
	for i, s := range suggestions {
		word := wordStyle.Render(fmt.Sprintf("%-24s", mask.Apply(s.Term)))
		h.out.Printf("%2d. %s distance %.2f  proximity %.3f  (count: %8s)",
			i+1, word, s.Distance, s.Proximity, utils.FormatCount(int(s.Count)))
	}
}
