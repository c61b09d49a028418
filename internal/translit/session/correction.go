package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/longkey1/translitc/internal/translit"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrNotCorrectable is returned when feedback targets a message that is
	// not an existing non-error Bot message.
	ErrNotCorrectable = errors.New("message cannot be corrected")

	// ErrNoOpenCorrection is returned when submitting without an open form for the message.
	ErrNoOpenCorrection = errors.New("no correction form is open for this message")
)

// Field selects a correction draft field
type Field int

const (
	FieldSourceText Field = iota
	FieldCorrectedText
)

// MarkFeedback records feedback on a Bot message.
// Positive feedback changes nothing. Negative feedback toggles the correction
// form for the message; opening it closes any other form, resets the draft
// and seeds the source text from the message.
func (s *Session) MarkFeedback(id string, isCorrect bool) error {
	s.mu.Lock()
	msg, ok := s.findLocked(id)
	if !ok || !msg.Correctable() {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotCorrectable, id)
	}

	if isCorrect || s.closed {
		s.mu.Unlock()
		if isCorrect {
			s.logger.Debug(moduleName, "positive feedback", map[string]interface{}{"message_id": id})
		}
		return nil
	}

	if s.state.OpenCorrectionFor == id {
		s.state.OpenCorrectionFor = ""
	} else {
		s.state.OpenCorrectionFor = id
	}
	s.state.CorrectionDraft = CorrectionDraft{}
	if s.state.OpenCorrectionFor != "" {
		s.state.CorrectionDraft.SourceText = msg.SourceText
	}
	snap, listeners := s.changedLocked()
	s.mu.Unlock()

	notify(snap, listeners)
	return nil
}

// UpdateDraft sets one field of the correction draft. Values are not validated.
func (s *Session) UpdateDraft(field Field, value string) error {
	switch field {
	case FieldSourceText, FieldCorrectedText:
	default:
		return fmt.Errorf("unknown correction field: %d", field)
	}

	s.update(func(st *Snapshot) bool {
		if field == FieldSourceText {
			st.CorrectionDraft.SourceText = value
		} else {
			st.CorrectionDraft.CorrectedText = value
		}
		return true
	})
	return nil
}

// CancelCorrection closes the open correction form and clears the draft
func (s *Session) CancelCorrection() {
	s.update(func(st *Snapshot) bool {
		if st.OpenCorrectionFor == "" && st.CorrectionDraft == (CorrectionDraft{}) {
			return false
		}
		st.OpenCorrectionFor = ""
		st.CorrectionDraft = CorrectionDraft{}
		return true
	})
}

// SubmitCorrection sends the draft for the open form of message id.
// Exactly one call is issued. Once it settles the form for id is closed and
// its draft cleared whatever the outcome. A form opened for another message
// in the meantime is left alone. A failure is logged and returned so the
// view can show a notice; it is never retried.
// It does not wait for, or block, a pending transliteration.
func (s *Session) SubmitCorrection(ctx context.Context, id string) error {
	s.mu.Lock()
	if id == "" || s.state.OpenCorrectionFor != id {
		s.mu.Unlock()
		return ErrNoOpenCorrection
	}
	correction := translit.Correction{
		Key:   norm.NFC.String(s.state.CorrectionDraft.SourceText),
		Value: norm.NFC.String(s.state.CorrectionDraft.CorrectedText),
	}
	s.inflight.Add(1)
	s.mu.Unlock()
	defer s.inflight.Done()

	err := s.client.Contribute(ctx, correction)

	s.update(func(st *Snapshot) bool {
		if st.OpenCorrectionFor != id {
			return false
		}
		st.OpenCorrectionFor = ""
		st.CorrectionDraft = CorrectionDraft{}
		return true
	})

	if err != nil {
		s.logger.Error("correction", "correction submission failed", map[string]interface{}{
			"message_id": id,
			"error":      err,
		})
		return fmt.Errorf("submitting correction: %w", err)
	}

	s.logger.Info("correction", "correction submitted", map[string]interface{}{
		"message_id": id,
	})
	return nil
}
