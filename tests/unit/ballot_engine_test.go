package unit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	ballotengine "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/adapters/memory"
	ballotdomainerrors "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/errors"
	ballothttp "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/transport/http"
)

// fakeClock lets window-boundary tests move time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func newClockedModule(now time.Time) (ballotengine.Module, *memory.Store, *fakeClock) {
	store := memory.NewStore(nil)
	clock := &fakeClock{now: now}
	module := ballotengine.NewModule(ballotengine.Dependencies{
		Polls:    store,
		Registry: store,
		Audit:    store,
		Clock:    clock,
		IDGen:    store,
	})
	module.Store = store
	return module, store, clock
}

func createMayorPoll(t *testing.T, module ballotengine.Module) ballothttp.PollResponse {
	t.Helper()
	poll, err := module.Handler.CreatePollHandler(context.Background(), "creator-1", ballothttp.CreatePollRequest{
		Title:           "Mayor",
		Candidates:      []string{"Alice", "Bob"},
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("create poll failed: %v", err)
	}
	return poll
}

func TestRegisterCreateVoteAndTally(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	module.Store.SetVoter("voter-1")

	poll := createMayorPoll(t, module)
	if poll.PollID != 0 {
		t.Fatalf("expected first poll id 0, got %d", poll.PollID)
	}

	vote, err := module.Handler.CastVoteHandler(context.Background(), "voter-1", poll.PollID, ballothttp.CastVoteRequest{
		CandidateIndex: 0,
	})
	if err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if vote.CandidateName != "Alice" || vote.TotalVotes != 1 {
		t.Fatalf("unexpected vote response: %+v", vote)
	}

	results, err := module.Handler.PollResultsHandler(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("poll results failed: %v", err)
	}
	if results.CandidateNames[0] != "Alice" || results.CandidateNames[1] != "Bob" {
		t.Fatalf("unexpected candidate order: %v", results.CandidateNames)
	}
	if results.VoteCounts[0] != 1 || results.VoteCounts[1] != 0 || results.TotalVotes != 1 {
		t.Fatalf("unexpected counts: %v total %d", results.VoteCounts, results.TotalVotes)
	}
	if results.Winner != "Alice" {
		t.Fatalf("expected winner Alice, got %q", results.Winner)
	}

	_, err = module.Handler.CastVoteHandler(context.Background(), "voter-1", poll.PollID, ballothttp.CastVoteRequest{
		CandidateIndex: 1,
	})
	if !errors.Is(err, ballotdomainerrors.ErrDuplicateVote) {
		t.Fatalf("expected duplicate vote error, got %v", err)
	}

	after, err := module.Handler.PollResultsHandler(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("poll results after duplicate failed: %v", err)
	}
	if after.VoteCounts[0] != 1 || after.VoteCounts[1] != 0 || after.TotalVotes != 1 {
		t.Fatalf("duplicate vote mutated counts: %v total %d", after.VoteCounts, after.TotalVotes)
	}
}

func TestUnregisteredVoterRejectedWithoutSideEffects(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	poll := createMayorPoll(t, module)
	eventsBefore := len(module.Store.AppendedEvents())

	_, err := module.Handler.CastVoteHandler(context.Background(), "stranger", poll.PollID, ballothttp.CastVoteRequest{
		CandidateIndex: 0,
	})
	if !errors.Is(err, ballotdomainerrors.ErrUnauthorizedVoter) {
		t.Fatalf("expected unauthorized voter error, got %v", err)
	}

	if got := len(module.Store.AppendedEvents()); got != eventsBefore {
		t.Fatalf("failed vote emitted an event: %d -> %d", eventsBefore, got)
	}
	results, err := module.Handler.PollResultsHandler(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("poll results failed: %v", err)
	}
	if results.TotalVotes != 0 {
		t.Fatalf("failed vote mutated state: total %d", results.TotalVotes)
	}
}

func TestCreatePollValidation(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	_, err := module.Handler.CreatePollHandler(ctx, "creator-1", ballothttp.CreatePollRequest{
		Title:           "  ",
		Candidates:      []string{"A", "B"},
		DurationMinutes: 10,
	})
	if !errors.Is(err, ballotdomainerrors.ErrInvalidTitle) {
		t.Fatalf("expected invalid title error, got %v", err)
	}

	_, err = module.Handler.CreatePollHandler(ctx, "creator-1", ballothttp.CreatePollRequest{
		Title:           "Lone option",
		Candidates:      []string{"A"},
		DurationMinutes: 10,
	})
	if !errors.Is(err, ballotdomainerrors.ErrInsufficientCandidates) {
		t.Fatalf("expected insufficient candidates error, got %v", err)
	}

	_, err = module.Handler.CreatePollHandler(ctx, "creator-1", ballothttp.CreatePollRequest{
		Title:           "No time",
		Candidates:      []string{"A", "B"},
		DurationMinutes: 0,
	})
	if !errors.Is(err, ballotdomainerrors.ErrInvalidDuration) {
		t.Fatalf("expected invalid duration error, got %v", err)
	}

	poll, err := module.Handler.CreatePollHandler(ctx, "creator-1", ballothttp.CreatePollRequest{
		Title:           "Two is enough",
		Candidates:      []string{"A", "B"},
		DurationMinutes: 10,
	})
	if err != nil {
		t.Fatalf("two-candidate poll should succeed: %v", err)
	}
	if poll.CandidateCount != 2 {
		t.Fatalf("expected 2 candidates, got %d", poll.CandidateCount)
	}
}

func TestSequentialPollIDs(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	for want := uint64(0); want < 3; want++ {
		poll := createMayorPoll(t, module)
		if poll.PollID != want {
			t.Fatalf("expected poll id %d, got %d", want, poll.PollID)
		}
	}
}

func TestWinnerTieBreakPrefersFirstCandidate(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	poll := createMayorPoll(t, module)

	voters := []string{"v1", "v2", "v3", "v4", "v5", "v6"}
	for _, voter := range voters {
		module.Store.SetVoter(voter)
	}
	for i, voter := range voters {
		_, err := module.Handler.CastVoteHandler(context.Background(), voter, poll.PollID, ballothttp.CastVoteRequest{
			CandidateIndex: i % 2,
		})
		if err != nil {
			t.Fatalf("vote by %s failed: %v", voter, err)
		}
	}

	results, err := module.Handler.PollResultsHandler(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("poll results failed: %v", err)
	}
	if results.VoteCounts[0] != 3 || results.VoteCounts[1] != 3 {
		t.Fatalf("expected 3-3 tie, got %v", results.VoteCounts)
	}
	if results.Winner != "Alice" {
		t.Fatalf("tie must go to the first candidate, got %q", results.Winner)
	}
}

func TestZeroVotePollReportsSentinelWinner(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	poll := createMayorPoll(t, module)

	results, err := module.Handler.PollResultsHandler(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("poll results failed: %v", err)
	}
	if results.Winner != "no votes cast" {
		t.Fatalf("expected sentinel winner, got %q", results.Winner)
	}
	if results.TotalVotes != 0 || results.VoteCounts[0] != 0 || results.VoteCounts[1] != 0 {
		t.Fatalf("expected empty tally, got %v total %d", results.VoteCounts, results.TotalVotes)
	}
}

func TestVoteWindowBoundariesAreVotable(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	module, store, clock := newClockedModule(start)
	store.SetVoter("early")
	store.SetVoter("late")
	store.SetVoter("too-late")
	store.SetVoter("too-early")

	poll := createMayorPoll(t, module)
	end := start.Add(60 * time.Minute)

	// Exactly at startTime.
	if _, err := module.Handler.CastVoteHandler(context.Background(), "early", poll.PollID, ballothttp.CastVoteRequest{CandidateIndex: 0}); err != nil {
		t.Fatalf("vote at startTime must succeed: %v", err)
	}

	clock.Set(start.Add(-time.Minute))
	_, err := module.Handler.CastVoteHandler(context.Background(), "too-early", poll.PollID, ballothttp.CastVoteRequest{CandidateIndex: 0})
	if !errors.Is(err, ballotdomainerrors.ErrPollNotStarted) {
		t.Fatalf("expected poll not started, got %v", err)
	}

	// Exactly at endTime.
	clock.Set(end)
	if _, err := module.Handler.CastVoteHandler(context.Background(), "late", poll.PollID, ballothttp.CastVoteRequest{CandidateIndex: 1}); err != nil {
		t.Fatalf("vote at endTime must succeed: %v", err)
	}

	clock.Set(end.Add(time.Second))
	_, err = module.Handler.CastVoteHandler(context.Background(), "too-late", poll.PollID, ballothttp.CastVoteRequest{CandidateIndex: 1})
	if !errors.Is(err, ballotdomainerrors.ErrPollEnded) {
		t.Fatalf("expected poll ended, got %v", err)
	}
}

func TestPollInfoDerivesExpiryWithoutClearingStoredFlag(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	module, _, clock := newClockedModule(start)
	poll := createMayorPoll(t, module)

	info, err := module.Handler.PollInfoHandler(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("poll info failed: %v", err)
	}
	if !info.StoredActive || !info.Active {
		t.Fatalf("fresh poll must be active: %+v", info)
	}

	clock.Set(start.Add(61 * time.Minute))
	expired, err := module.Handler.PollInfoHandler(context.Background(), poll.PollID)
	if err != nil {
		t.Fatalf("poll info after expiry failed: %v", err)
	}
	if !expired.StoredActive {
		t.Fatalf("stored flag must never be cleared")
	}
	if expired.Active {
		t.Fatalf("derived status must be inactive after endTime")
	}
}

func TestInvalidCandidateIndexRejected(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	module.Store.SetVoter("voter-1")
	poll := createMayorPoll(t, module)

	for _, index := range []int{-1, 2, 99} {
		_, err := module.Handler.CastVoteHandler(context.Background(), "voter-1", poll.PollID, ballothttp.CastVoteRequest{
			CandidateIndex: index,
		})
		if !errors.Is(err, ballotdomainerrors.ErrInvalidCandidate) {
			t.Fatalf("index %d: expected invalid candidate error, got %v", index, err)
		}
	}
}

func TestUnknownPollRejectedEverywhere(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	module.Store.SetVoter("voter-1")
	ctx := context.Background()

	if _, err := module.Handler.CastVoteHandler(ctx, "voter-1", 7, ballothttp.CastVoteRequest{}); !errors.Is(err, ballotdomainerrors.ErrPollNotFound) {
		t.Fatalf("vote: expected poll not found, got %v", err)
	}
	if _, err := module.Handler.PollResultsHandler(ctx, 7); !errors.Is(err, ballotdomainerrors.ErrPollNotFound) {
		t.Fatalf("results: expected poll not found, got %v", err)
	}
	if _, err := module.Handler.PollInfoHandler(ctx, 7); !errors.Is(err, ballotdomainerrors.ErrPollNotFound) {
		t.Fatalf("info: expected poll not found, got %v", err)
	}
	if _, err := module.Handler.HasVotedHandler(ctx, 7, "voter-1"); !errors.Is(err, ballotdomainerrors.ErrPollNotFound) {
		t.Fatalf("has voted: expected poll not found, got %v", err)
	}
}

func TestHasVotedFlagTracksSingleBallot(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	module.Store.SetVoter("voter-1")
	poll := createMayorPoll(t, module)

	before, err := module.Handler.HasVotedHandler(context.Background(), poll.PollID, "voter-1")
	if err != nil {
		t.Fatalf("has voted failed: %v", err)
	}
	if before.HasVoted {
		t.Fatalf("voter must start without a ballot flag")
	}

	if _, err := module.Handler.CastVoteHandler(context.Background(), "voter-1", poll.PollID, ballothttp.CastVoteRequest{CandidateIndex: 0}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}

	after, err := module.Handler.HasVotedHandler(context.Background(), poll.PollID, "voter-1")
	if err != nil {
		t.Fatalf("has voted failed: %v", err)
	}
	if !after.HasVoted {
		t.Fatalf("ballot flag must be set after a successful vote")
	}
}

func TestTotalVotesMatchesCandidateSum(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	poll := createMayorPoll(t, module)
	voters := []string{"a", "b", "c", "d", "e"}
	for i, voter := range voters {
		module.Store.SetVoter(voter)
		if _, err := module.Handler.CastVoteHandler(context.Background(), voter, poll.PollID, ballothttp.CastVoteRequest{
			CandidateIndex: i % 2,
		}); err != nil {
			t.Fatalf("vote by %s failed: %v", voter, err)
		}

		results, err := module.Handler.PollResultsHandler(context.Background(), poll.PollID)
		if err != nil {
			t.Fatalf("poll results failed: %v", err)
		}
		var sum uint64
		for _, count := range results.VoteCounts {
			sum += count
		}
		if sum != results.TotalVotes {
			t.Fatalf("invariant broken after %d votes: sum %d total %d", i+1, sum, results.TotalVotes)
		}
	}
}

func TestAuditEventSequence(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	module.Store.SetVoter("voter-1")
	poll := createMayorPoll(t, module)
	if _, err := module.Handler.CastVoteHandler(context.Background(), "voter-1", poll.PollID, ballothttp.CastVoteRequest{CandidateIndex: 1}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}

	events := module.Store.AppendedEvents()
	if len(events) != 2 {
		t.Fatalf("expected exactly 2 events, got %d", len(events))
	}
	if events[0].EventType != "poll.created" || events[1].EventType != "vote.cast" {
		t.Fatalf("unexpected event sequence: %s, %s", events[0].EventType, events[1].EventType)
	}
	if events[0].PartitionKey != "0" || events[1].PartitionKey != "0" {
		t.Fatalf("events must be partitioned by poll id: %q %q", events[0].PartitionKey, events[1].PartitionKey)
	}
}
