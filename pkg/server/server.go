package server

import (
	"bufio"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/pkg/predict"
)

const (
	codeBadRequest = 400
	codeInternal   = 500
)

// Options configure a Server.
type Options struct {
	// MaxQueryLen is the longest accepted query in characters.
	MaxQueryLen int
	// CacheSize is the number of query results kept. Zero disables the cache.
	CacheSize int
}

// Server answers requests against one engine. The engine is guarded by a
// read/write lock: lookups share it, indexing takes it exclusively.
type Server struct {
	mu       sync.RWMutex
	engine   *predict.PreDict
	cache    *lru.Cache
	opts     Options
	requests atomic.Int64
	log      *log.Logger
}

// New wraps engine. The server takes ownership, the engine must not be used
// directly afterwards.
func New(engine *predict.PreDict, opts Options) (*Server, error) {
	if engine == nil {
		return nil, errors.New("server needs an engine")
	}
	s := &Server{engine: engine, opts: opts, log: logger.New("server")}
	if opts.CacheSize > 0 {
		cache, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "create query cache")
		}
		s.cache = cache
	}
	return s, nil
}

// Serve handles requests from r until r is exhausted or ctx is done. ctx is
// checked between requests. A malformed message ends the stream since the
// decoder can not find the start of the next one.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	bw := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(bw)
	send := func(v any) error {
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encode response")
		}
		return errors.Wrap(bw.Flush(), "write response")
	}

	s.log.Debug("Starting server")
	if err := send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed, stopping")
				return nil
			}
			s.log.Error("Decoding request", "err", err)
			_ = send(ErrorResponse{Error: "malformed request", Code: codeBadRequest})
			return errors.Wrap(err, "decode request")
		}
		if err := send(s.Handle(req)); err != nil {
			return err
		}
	}
}

// Handle answers a single request. It is safe for concurrent use.
func (s *Server) Handle(req Request) any {
	s.requests.Add(1)
	switch req.Action {
	case "", ActionQuery:
		return s.query(req)
	case ActionIndex:
		return s.index(req)
	case ActionStats:
		return s.stats(req)
	case ActionHealth:
		return StatusResponse{ID: req.ID, Status: "ok"}
	}
	s.log.Debug("Unknown action", "id", req.ID, "action", req.Action)
	return ErrorResponse{ID: req.ID, Error: "unknown action: " + req.Action, Code: codeBadRequest}
}

func (s *Server) query(req Request) any {
	if req.Word == "" {
		return ErrorResponse{ID: req.ID, Error: "word is empty", Code: codeBadRequest}
	}
	if n := utf8.RuneCountInString(req.Word); s.opts.MaxQueryLen > 0 && n > s.opts.MaxQueryLen {
		return ErrorResponse{ID: req.ID, Error: "word exceeds maximum length", Code: codeBadRequest}
	}

	start := time.Now()
	items := s.lookup(req.Word)
	if req.Limit > 0 && len(items) > req.Limit {
		items = items[:req.Limit]
	}
	suggestions := make([]Suggestion, len(items))
	for i, it := range items {
		suggestions[i] = Suggestion{Word: it.Term, Distance: it.Distance, Proximity: it.Proximity, Count: it.Count}
	}
	return QueryResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	}
}

func (s *Server) lookup(word string) []predict.SuggestItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cache != nil {
		if v, ok := s.cache.Get(word); ok {
			return v.([]predict.SuggestItem)
		}
	}
	items := s.engine.Lookup(word)
	if s.cache != nil {
		s.cache.Add(word, items)
	}
	return items
}

func (s *Server) index(req Request) any {
	words := req.Words
	if req.Word != "" {
		words = append([]string{req.Word}, words...)
	}
	if len(words) == 0 {
		return ErrorResponse{ID: req.ID, Error: "nothing to index", Code: codeBadRequest}
	}

	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache != nil {
		s.cache.Purge()
	}
	for i, w := range words {
		if _, err := s.engine.Index(w); err != nil {
			s.log.Error("Indexing failed", "word", w, "err", err)
			return ErrorResponse{ID: req.ID, Error: errors.Wrapf(err, "after %d words", i).Error(), Code: codeInternal}
		}
	}
	return IndexResponse{ID: req.ID, Indexed: len(words), TimeTaken: time.Since(start).Microseconds()}
}

func (s *Server) stats(req Request) any {
	s.mu.RLock()
	st := s.engine.Stats()
	name := s.engine.String()
	s.mu.RUnlock()
	return StatsResponse{
		ID:        req.ID,
		Engine:    name,
		Words:     st.Words,
		Keys:      st.Keys,
		MaxLength: st.MaxLength,
		Requests:  s.requests.Load(),
	}
}
