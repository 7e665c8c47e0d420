/*
Package server implements msgpack IPC for spelling correction.

The server reads a stream of msgpack encoded requests from stdin and answers
each with one msgpack encoded response on stdout. Messages are not framed,
values simply follow each other. Logs go to stderr.

On start the server sends

	{"status": "ready"}

Every request carries an ID that is echoed back, an action and the fields the
action needs. Queries are the default action:

	{"id": "q1", "w": "kittn", "l": 3}

and are answered with the best matches, the time taken in microseconds and the
number of suggestions:

	{"id": "q1", "s": [{"w": "kitten", "d": 1, "p": 0.66, "n": 1}], "c": 1, "t": 35}

Words are added at runtime with

	{"id": "i1", "a": "index", "w": "kitten"}
	{"id": "i2", "a": "index", "ws": ["mitten", "bitten"]}

The "stats" action reports the size of the index and "health" answers with
the ready status. Failures are reported as

	{"id": "q2", "e": "word is empty", "c": 400}

Lookups run in parallel with each other, indexing excludes everything else.
*/
package server

// Actions understood by the server.
const (
	ActionQuery  = "query"
	ActionIndex  = "index"
	ActionStats  = "stats"
	ActionHealth = "health"
)

// Request is the only message a client sends.
type Request struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"a,omitempty"`
	Word   string   `msgpack:"w,omitempty"`
	Words  []string `msgpack:"ws,omitempty"`
	Limit  int      `msgpack:"l,omitempty"`
}

// Suggestion is one match of a query.
type Suggestion struct {
	Word      string  `msgpack:"w"`
	Distance  float64 `msgpack:"d"`
	Proximity float64 `msgpack:"p"`
	Count     int     `msgpack:"n"`
}

// QueryResponse answers a query.
type QueryResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// IndexResponse answers an index request.
type IndexResponse struct {
	ID        string `msgpack:"id"`
	Indexed   int    `msgpack:"i"`
	TimeTaken int64  `msgpack:"t"`
}

// StatsResponse describes the index.
type StatsResponse struct {
	ID        string `msgpack:"id"`
	Engine    string `msgpack:"e"`
	Words     int    `msgpack:"w"`
	Keys      int    `msgpack:"k"`
	MaxLength int    `msgpack:"m"`
	Requests  int64  `msgpack:"r"`
}

// StatusResponse is sent on start and for health checks.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
