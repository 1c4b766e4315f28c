package events

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Append(ctx context.Context, e Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockRepository) List(ctx context.Context) ([]Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Event), args.Error(1)
}

func TestJournalObserver_Appends(t *testing.T) {
	repo := new(mockRepository)
	e := Event{Seq: 1, Type: PostCreated, Actor: "did:plc:alice", PostID: 1}
	repo.On("Append", mock.Anything, e).Return(nil).Once()

	j := NewJournalObserver(repo, nil)
	j.Notify(context.Background(), e)

	assert.Equal(t, 0, j.Pending())
	repo.AssertExpectations(t)
}

func TestJournalObserver_FailedAppendKeepsOrder(t *testing.T) {
	repo := new(mockRepository)
	first := Event{Seq: 1, Type: PostCreated, Actor: "did:plc:alice", PostID: 1}
	second := Event{Seq: 2, Type: PostLiked, Actor: "did:plc:bob", PostID: 1}
	third := Event{Seq: 3, Type: PostUnliked, Actor: "did:plc:bob", PostID: 1}

	var order []int64
	record := func(args mock.Arguments) { order = append(order, args.Get(1).(Event).Seq) }

	repo.On("Append", mock.Anything, first).Return(nil).Run(record).Once()
	repo.On("Append", mock.Anything, second).Return(errors.New("connection refused")).Once()
	repo.On("Append", mock.Anything, second).Return(nil).Run(record).Once()
	repo.On("Append", mock.Anything, third).Return(nil).Run(record).Once()

	j := NewJournalObserver(repo, nil)
	j.Notify(context.Background(), first)
	assert.NotPanics(t, func() { j.Notify(context.Background(), second) })
	assert.Equal(t, 1, j.Pending(), "the failed event stays queued")

	j.Notify(context.Background(), third)

	assert.Equal(t, 0, j.Pending())
	assert.Equal(t, []int64{1, 2, 3}, order)
	repo.AssertExpectations(t)
}

func TestJournalObserver_LaterEventsWaitBehindFailure(t *testing.T) {
	repo := new(mockRepository)
	second := Event{Seq: 2, Type: PostLiked, PostID: 1}
	third := Event{Seq: 3, Type: PostLiked, PostID: 1}
	repo.On("Append", mock.Anything, second).Return(errors.New("connection refused")).Times(3)

	j := NewJournalObserver(repo, nil)
	j.Notify(context.Background(), second)
	j.Notify(context.Background(), third)

	// seq 3 is never written ahead of seq 2
	assert.Equal(t, 2, j.Pending())
	repo.AssertNotCalled(t, "Append", mock.Anything, third)

	err := j.Flush(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 events not journaled")
}

func TestJournalObserver_FlushTreatsDuplicateAsWritten(t *testing.T) {
	repo := new(mockRepository)
	e := Event{Seq: 4, Type: PostDeleted, PostID: 1}
	repo.On("Append", mock.Anything, e).Return(errors.New("timeout")).Once()
	repo.On("Append", mock.Anything, e).Return(fmt.Errorf("event seq 4: %w", ErrAlreadyJournaled)).Once()

	j := NewJournalObserver(repo, nil)
	j.Notify(context.Background(), e)
	require.Equal(t, 1, j.Pending())

	require.NoError(t, j.Flush(context.Background()))
	assert.Equal(t, 0, j.Pending())
	repo.AssertExpectations(t)
}

func TestJournalObserver_IgnoresCancellation(t *testing.T) {
	repo := new(mockRepository)
	e := Event{Seq: 3, Type: PostDeleted, Actor: "did:plc:alice", PostID: 1}
	repo.On("Append", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), e).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewJournalObserver(repo, nil).Notify(ctx, e)

	repo.AssertExpectations(t)
}
