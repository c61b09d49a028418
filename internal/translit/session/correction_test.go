package session

import (
	"context"
	"errors"
	"testing"

	"github.com/longkey1/translitc/internal/translit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionWithBots runs one dispatch cycle per input and returns the Bot message ids.
func sessionWithBots(t *testing.T, client *fakeClient, inputs ...string) (*Session, []string) {
	t.Helper()
	s := newTestSession(client)
	for _, in := range inputs {
		submit(t, s, in)
	}
	var ids []string
	for _, m := range s.Snapshot().Log {
		if m.Role == translit.RoleBot {
			ids = append(ids, m.ID)
		}
	}
	return s, ids
}

func TestMarkFeedbackToggles(t *testing.T) {
	s, ids := sessionWithBots(t, &fakeClient{result: "ਹੈਲੋ"}, "hello")
	m := ids[0]

	require.NoError(t, s.MarkFeedback(m, false))
	snap := s.Snapshot()
	assert.Equal(t, m, snap.OpenCorrectionFor)
	assert.Equal(t, CorrectionDraft{SourceText: "hello"}, snap.CorrectionDraft)

	require.NoError(t, s.MarkFeedback(m, false))
	snap = s.Snapshot()
	assert.Empty(t, snap.OpenCorrectionFor)
	assert.Equal(t, CorrectionDraft{}, snap.CorrectionDraft)
}

func TestMarkFeedbackPositiveIsInert(t *testing.T) {
	s, ids := sessionWithBots(t, &fakeClient{result: "x"}, "hello")
	before := s.Snapshot()

	require.NoError(t, s.MarkFeedback(ids[0], true))
	assert.Equal(t, before, s.Snapshot())
}

func TestSingleOpenCorrectionForm(t *testing.T) {
	s, ids := sessionWithBots(t, &fakeClient{result: "x"}, "first", "second")
	a, b := ids[0], ids[1]

	require.NoError(t, s.MarkFeedback(a, false))
	require.NoError(t, s.UpdateDraft(FieldCorrectedText, "draft for a"))

	require.NoError(t, s.MarkFeedback(b, false))
	snap := s.Snapshot()
	assert.Equal(t, b, snap.OpenCorrectionFor)
	assert.Equal(t, CorrectionDraft{SourceText: "second"}, snap.CorrectionDraft)
}

func TestMarkFeedbackRejectsNonCorrectableMessages(t *testing.T) {
	client := &fakeClient{result: "ok"}
	s := newTestSession(client)
	submit(t, s, "fine")

	client.mu.Lock()
	client.err = errors.New("down")
	client.mu.Unlock()
	submit(t, s, "broken")

	snap := s.Snapshot()
	userID := snap.Log[0].ID
	errorBotID := snap.Log[3].ID
	require.True(t, snap.Log[3].IsError)

	for _, id := range []string{userID, errorBotID, "does-not-exist", ""} {
		err := s.MarkFeedback(id, false)
		assert.ErrorIs(t, err, ErrNotCorrectable)
		assert.Empty(t, s.Snapshot().OpenCorrectionFor)
	}
}

func TestUpdateDraft(t *testing.T) {
	s, ids := sessionWithBots(t, &fakeClient{result: "x"}, "hi")
	require.NoError(t, s.MarkFeedback(ids[0], false))

	require.NoError(t, s.UpdateDraft(FieldSourceText, "hi there"))
	require.NoError(t, s.UpdateDraft(FieldCorrectedText, "ਹਾਇ ਦੇਅਰ"))
	assert.Equal(t, CorrectionDraft{SourceText: "hi there", CorrectedText: "ਹਾਇ ਦੇਅਰ"}, s.Snapshot().CorrectionDraft)

	assert.Error(t, s.UpdateDraft(Field(42), "x"))
}

func TestSubmitCorrection(t *testing.T) {
	tests := []struct {
		name          string
		contributeErr error
	}{
		{name: "accepted"},
		{name: "rejected by service", contributeErr: errors.New("HTTP 500")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{result: "ਹੈ", contributeErr: tt.contributeErr}
			s, ids := sessionWithBots(t, client, "hi")
			m := ids[0]

			require.NoError(t, s.MarkFeedback(m, false))
			require.NoError(t, s.UpdateDraft(FieldSourceText, "hi"))
			require.NoError(t, s.UpdateDraft(FieldCorrectedText, "ਹਾਇ"))

			err := s.SubmitCorrection(context.Background(), m)
			if tt.contributeErr != nil {
				assert.ErrorIs(t, err, tt.contributeErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, []translit.Correction{{Key: "hi", Value: "ਹਾਇ"}}, client.Corrections())
			snap := s.Snapshot()
			assert.Empty(t, snap.OpenCorrectionFor)
			assert.Equal(t, CorrectionDraft{}, snap.CorrectionDraft)
			assert.Len(t, snap.Log, 2, "corrections never touch the log")
		})
	}
}

func TestSubmitCorrectionRequiresOpenForm(t *testing.T) {
	client := &fakeClient{result: "x"}
	s, ids := sessionWithBots(t, client, "one", "two")

	assert.ErrorIs(t, s.SubmitCorrection(context.Background(), ids[0]), ErrNoOpenCorrection)

	require.NoError(t, s.MarkFeedback(ids[0], false))
	assert.ErrorIs(t, s.SubmitCorrection(context.Background(), ids[1]), ErrNoOpenCorrection)
	assert.ErrorIs(t, s.SubmitCorrection(context.Background(), ""), ErrNoOpenCorrection)

	assert.Empty(t, client.Corrections())
	assert.Equal(t, ids[0], s.Snapshot().OpenCorrectionFor)
}

func TestSubmitCorrectionLeavesOtherFormOpen(t *testing.T) {
	client := &fakeClient{result: "x"}
	s, ids := sessionWithBots(t, client, "first", "second")
	a, b := ids[0], ids[1]

	require.NoError(t, s.MarkFeedback(a, false))
	require.NoError(t, s.UpdateDraft(FieldCorrectedText, "fix for a"))

	// The user moves on to b while a's correction is still in flight.
	client.onContribute = func() {
		require.NoError(t, s.MarkFeedback(b, false))
		require.NoError(t, s.UpdateDraft(FieldCorrectedText, "typed for b"))
	}

	require.NoError(t, s.SubmitCorrection(context.Background(), a))

	snap := s.Snapshot()
	assert.Equal(t, b, snap.OpenCorrectionFor)
	assert.Equal(t, CorrectionDraft{SourceText: "second", CorrectedText: "typed for b"}, snap.CorrectionDraft)
	assert.Equal(t, []translit.Correction{{Key: "first", Value: "fix for a"}}, client.Corrections())
}

func TestCorrectionSettlingAfterCloseIsDropped(t *testing.T) {
	client := &fakeClient{result: "x"}
	s, ids := sessionWithBots(t, client, "hello")
	require.NoError(t, s.MarkFeedback(ids[0], false))
	require.NoError(t, s.UpdateDraft(FieldCorrectedText, "y"))

	client.onContribute = s.Close
	require.NoError(t, s.SubmitCorrection(context.Background(), ids[0]))

	before := s.Snapshot()
	assert.Equal(t, ids[0], before.OpenCorrectionFor)
	assert.Equal(t, "y", before.CorrectionDraft.CorrectedText)

	// Nothing changes a closed session, not even a fresh submission.
	assert.NoError(t, s.SubmitCorrection(context.Background(), ids[0]))
	require.NoError(t, s.MarkFeedback(ids[0], false))
	assert.Equal(t, before, s.Snapshot())
	assert.Len(t, client.Corrections(), 2)
}

func TestSubmitCorrectionNormalizesText(t *testing.T) {
	client := &fakeClient{result: "x"}
	s, ids := sessionWithBots(t, client, "cafe")
	require.NoError(t, s.MarkFeedback(ids[0], false))

	// "e" followed by a combining acute accent composes to "é".
	require.NoError(t, s.UpdateDraft(FieldCorrectedText, "cafe\u0301"))
	require.NoError(t, s.SubmitCorrection(context.Background(), ids[0]))

	assert.Equal(t, "caf\u00e9", client.Corrections()[0].Value)
}

func TestCorrectionNotBlockedByPendingTransliteration(t *testing.T) {
	client := &fakeClient{result: "x"}
	s, ids := sessionWithBots(t, client, "hello")
	require.NoError(t, s.MarkFeedback(ids[0], false))

	client.mu.Lock()
	client.gate = make(chan struct{})
	client.mu.Unlock()

	s.SetDraft("next")
	require.True(t, s.SubmitDraft())
	require.True(t, s.Snapshot().Pending)

	require.NoError(t, s.SubmitCorrection(context.Background(), ids[0]))
	assert.Len(t, client.Corrections(), 1)
	assert.True(t, s.Snapshot().Pending)

	close(client.gate)
	s.Wait()
	assert.False(t, s.Snapshot().Pending)
}

func TestCancelCorrection(t *testing.T) {
	client := &fakeClient{result: "x"}
	s, ids := sessionWithBots(t, client, "hello")
	require.NoError(t, s.MarkFeedback(ids[0], false))
	require.NoError(t, s.UpdateDraft(FieldCorrectedText, "y"))

	s.CancelCorrection()

	snap := s.Snapshot()
	assert.Empty(t, snap.OpenCorrectionFor)
	assert.Equal(t, CorrectionDraft{}, snap.CorrectionDraft)
	assert.Empty(t, client.Corrections())
}
