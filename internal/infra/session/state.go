// Package session keeps the per-visitor UI state of the web front end: the
// last query, the current result, the error banner and which requests are
// running.
//
// Each request kind has its own in-flight flag and sequence counter. A
// response is applied only when it carries the latest sequence number for its
// kind; compose responses additionally require that the result they were
// built from is still the current one.
package session

import (
	"errors"
	"time"

	"factcheck-web/internal/domain/entity"
)

// Kind identifies an independent request type within a session.
type Kind string

const (
	KindVerify       Kind = "verify"
	KindComposeNews  Kind = "compose_news"
	KindComposeTweet Kind = "compose_tweet"
)

// ErrInFlight is returned by Begin when the same kind is already running.
var ErrInFlight = errors.New("request already in progress")

// ErrNotFound is returned by stores for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// DefaultLease is how long an in-flight flag blocks new requests of its
// kind. After it elapses the flag is considered abandoned.
const DefaultLease = 3 * time.Minute

// State is one visitor's UI state.
type State struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`

	// Query is the text in the input box; ResultQuery is the claim the
	// current Result answers.
	Query       string                     `json:"query"`
	ResultQuery string                     `json:"result_query,omitempty"`
	Result      *entity.VerificationResult `json:"result,omitempty"`
	ResultGen   uint64                     `json:"result_gen"`
	Err         string                     `json:"error,omitempty"`

	InFlight map[Kind]time.Time `json:"in_flight,omitempty"`
	Seq      map[Kind]uint64    `json:"seq,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewState returns an empty state for id.
func NewState(id string) *State {
	return &State{ID: id}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := *s
	c.Result = s.Result.Clone()
	if s.InFlight != nil {
		c.InFlight = make(map[Kind]time.Time, len(s.InFlight))
		for k, v := range s.InFlight {
			c.InFlight[k] = v
		}
	}
	if s.Seq != nil {
		c.Seq = make(map[Kind]uint64, len(s.Seq))
		for k, v := range s.Seq {
			c.Seq[k] = v
		}
	}
	return &c
}

// Busy reports whether a request of kind is running at now.
func (s *State) Busy(kind Kind, now time.Time, lease time.Duration) bool {
	started, ok := s.InFlight[kind]
	if !ok {
		return false
	}
	return now.Sub(started) < lease
}

// Ticket identifies one started request.
type Ticket struct {
	Kind Kind
	Seq  uint64
	// Gen is the result generation the request was started against.
	Gen uint64
}

// Begin marks kind in flight and issues the next sequence number.
//
// Starting a verify clears the previous result and error and moves to a new
// result generation, so composes built on the old result are discarded.
func (s *State) Begin(kind Kind, now time.Time, lease time.Duration) (Ticket, error) {
	if s.Busy(kind, now, lease) {
		return Ticket{}, ErrInFlight
	}
	if s.InFlight == nil {
		s.InFlight = make(map[Kind]time.Time)
	}
	if s.Seq == nil {
		s.Seq = make(map[Kind]uint64)
	}

	s.Seq[kind]++
	s.InFlight[kind] = now
	s.Err = ""
	s.UpdatedAt = now

	if kind == KindVerify {
		s.Result = nil
		s.ResultQuery = ""
		s.ResultGen++
	}
	return Ticket{Kind: kind, Seq: s.Seq[kind], Gen: s.ResultGen}, nil
}

// current reports whether t is the latest request of its kind.
func (s *State) current(t Ticket) bool {
	return s.Seq[t.Kind] == t.Seq
}

func (s *State) finish(t Ticket, now time.Time) {
	delete(s.InFlight, t.Kind)
	s.UpdatedAt = now
}

// FinishVerify stores result for query. It reports false, changing nothing,
// when t has been superseded.
func (s *State) FinishVerify(t Ticket, query string, result *entity.VerificationResult, now time.Time) bool {
	if !s.current(t) || t.Gen != s.ResultGen {
		return false
	}
	s.finish(t, now)
	s.Result = result.Clone()
	s.ResultQuery = query
	s.Err = ""
	return true
}

// FinishCompose merges a composed article or post into the current result.
// It reports false when t has been superseded or the result it was composed
// from has been replaced; the in-flight flag is still cleared in the latter
// case.
func (s *State) FinishCompose(t Ticket, text string, now time.Time) bool {
	if !s.current(t) {
		return false
	}
	s.finish(t, now)
	if t.Gen != s.ResultGen || s.Result == nil {
		return false
	}
	switch t.Kind {
	case KindComposeNews:
		s.Result = s.Result.WithNewsArticle(text)
	case KindComposeTweet:
		s.Result = s.Result.WithXTweet(text)
	default:
		return false
	}
	s.Err = ""
	return true
}

// Fail records message for t. Any existing result is kept. It reports false
// when t has been superseded.
func (s *State) Fail(t Ticket, message string, now time.Time) bool {
	if !s.current(t) {
		return false
	}
	s.finish(t, now)
	s.Err = message
	return true
}

// Loading reports whether kind is running; templates use it for spinners.
func (s *State) Loading(kind Kind) bool {
	return s.Busy(kind, time.Now(), DefaultLease)
}
