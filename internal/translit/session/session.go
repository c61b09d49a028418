// Package session holds the state of one interactive transliteration conversation.
//
// A Session owns the message log, the draft input, the in-flight flag, the
// selected language mode and the correction form. All mutation goes through
// its methods; readers take a Snapshot or subscribe to change notifications.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/longkey1/translitc/internal/logger"
	"github.com/longkey1/translitc/internal/translit"
)

const moduleName = "session"

// CorrectionDraft is the content of the open correction form
type CorrectionDraft struct {
	SourceText    string `json:"source_text"`
	CorrectedText string `json:"corrected_text"`
}

// Snapshot is a point-in-time copy of the session state.
// Version increases with every change, so consumers can drop stale notifications.
type Snapshot struct {
	Version           uint64             `json:"version"`
	Log               []translit.Message `json:"log"`
	Draft             string             `json:"draft"`
	Pending           bool               `json:"pending"`
	Language          translit.Language  `json:"language"`
	OpenCorrectionFor string             `json:"open_correction_for,omitempty"` // Message ID, "" when closed
	CorrectionDraft   CorrectionDraft    `json:"correction_draft"`
}

// Message returns the logged message with the given id
func (s Snapshot) Message(id string) (translit.Message, bool) {
	for _, m := range s.Log {
		if m.ID == id {
			return m, true
		}
	}
	return translit.Message{}, false
}

// Options configures a new Session
type Options struct {
	Client     translit.Client
	Logger     logger.Logger
	Language   translit.Language
	MinLatency time.Duration // Minimum perceived latency of a successful dispatch
}

// Session is the single source of truth for one conversation
type Session struct {
	mu    sync.Mutex
	state Snapshot

	client     translit.Client
	dispatcher *Dispatcher
	logger     logger.Logger

	listeners    map[int]func(Snapshot)
	nextListener int

	inflight sync.WaitGroup
	closed   bool
}

// New creates a new empty session
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		state: Snapshot{
			Log:      []translit.Message{},
			Language: opts.Language,
		},
		client:     opts.Client,
		dispatcher: NewDispatcher(opts.Client, opts.MinLatency, log),
		logger:     log,
		listeners:  make(map[int]func(Snapshot)),
	}
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change.
// fn runs on the goroutine that made the change and must not block.
// The returned function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SetDraft replaces the uncommitted input
func (s *Session) SetDraft(text string) {
	s.update(func(st *Snapshot) bool {
		if st.Draft == text {
			return false
		}
		st.Draft = text
		return true
	})
}

// SubmitDraft commits the draft input.
// It appends a User message with the trimmed text, clears the draft, marks
// the session pending and dispatches the text with the current language mode.
// It is a no-op returning false when the trimmed draft is empty, a request is
// already pending, or the session is closed.
func (s *Session) SubmitDraft() bool {
	s.mu.Lock()
	text := strings.TrimSpace(s.state.Draft)
	if text == "" || s.state.Pending || s.closed {
		s.mu.Unlock()
		return false
	}

	s.state.Log = append(s.state.Log, translit.NewUserMessage(text))
	s.state.Draft = ""
	s.state.Pending = true
	lang := s.state.Language
	s.inflight.Add(1)
	snap, listeners := s.changedLocked()
	s.mu.Unlock()

	notify(snap, listeners)
	s.logger.Debug(moduleName, "draft submitted", map[string]interface{}{
		"length":   len(text),
		"language": lang.String(),
	})

	go func() {
		defer s.inflight.Done()
		// The call is never cancelled; a late result is dropped by AppendBotMessage.
		content, isError := s.dispatcher.Dispatch(context.Background(), text, lang)
		s.AppendBotMessage(content, text, isError)
	}()
	return true
}

// AppendBotMessage appends a Bot message and ends the pending interval.
// Results arriving after Close are ignored.
func (s *Session) AppendBotMessage(content, sourceText string, isError bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug(moduleName, "dropping result for closed session", map[string]interface{}{
			"is_error": isError,
		})
		return
	}

	s.state.Log = append(s.state.Log, translit.NewBotMessage(content, sourceText, isError))
	s.state.Pending = false
	snap, listeners := s.changedLocked()
	s.mu.Unlock()

	notify(snap, listeners)
}

// SelectLanguage sets the language mode used by the next submission.
// A request already in flight keeps the mode it was dispatched with.
func (s *Session) SelectLanguage(lang translit.Language) {
	s.update(func(st *Snapshot) bool {
		if st.Language == lang {
			return false
		}
		st.Language = lang
		return true
	})
}

// Wait blocks until every in-flight transliteration and correction call has settled
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Close detaches the session from its view. Calls already issued still run
// to completion, but their results no longer change the state.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.listeners = make(map[int]func(Snapshot))
	s.mu.Unlock()
}

// update applies fn under the lock and notifies listeners when fn reports a change.
// A closed session ignores every update.
func (s *Session) update(fn func(st *Snapshot) bool) {
	s.mu.Lock()
	if s.closed || !fn(&s.state) {
		s.mu.Unlock()
		return
	}
	snap, listeners := s.changedLocked()
	s.mu.Unlock()

	notify(snap, listeners)
}

func (s *Session) changedLocked() (Snapshot, []func(Snapshot)) {
	s.state.Version++
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	return s.snapshotLocked(), listeners
}

func (s *Session) snapshotLocked() Snapshot {
	snap := s.state
	snap.Log = make([]translit.Message, len(s.state.Log))
	copy(snap.Log, s.state.Log)
	return snap
}

func notify(snap Snapshot, listeners []func(Snapshot)) {
	for _, fn := range listeners {
		fn(snap)
	}
}

func (s *Session) findLocked(id string) (translit.Message, bool) {
	for _, m := range s.state.Log {
		if m.ID == id {
			return m, true
		}
	}
	return translit.Message{}, false
}
