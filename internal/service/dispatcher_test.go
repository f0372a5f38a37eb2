package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradetext/sms-jobs/internal/adapters/memory"
	"github.com/tradetext/sms-jobs/internal/core"
	"github.com/tradetext/sms-jobs/internal/data"
	"github.com/tradetext/sms-jobs/internal/domain/model"
)

const testPhone = "+17135550100"

// mockPreferenceRepository is a mock implementation of core.PreferenceRepository.
type mockPreferenceRepository struct {
	mock.Mock
}

func (m *mockPreferenceRepository) GetByPhone(ctx context.Context, phone string) (*model.ContractorPreferences, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContractorPreferences), args.Error(1)
}

// mockImageAnalyzer is a mock implementation of core.ImageAnalyzer.
type mockImageAnalyzer struct {
	mock.Mock
}

func (m *mockImageAnalyzer) Assess(ctx context.Context, photoURL string) (string, error) {
	args := m.Called(ctx, photoURL)
	return args.String(0), args.Error(1)
}

func newTestDispatcher(t *testing.T, opts DispatcherServiceOptions) *DispatcherService {
	t.Helper()
	if opts.Deps.Search == nil {
		opts.Deps.Search = NewJobSearchService(JobSearchServiceOptions{
			Fixtures: data.NewFixtureJobRepo(nil),
		})
	}
	if opts.Deps.Sessions == nil {
		opts.Deps.Sessions = memory.NewSessionStore()
	}
	return NewDispatcherService(opts)
}

func TestDispatcher_StaticReplies(t *testing.T) {
	d := newTestDispatcher(t, DispatcherServiceOptions{})
	ctx := context.Background()

	assert.Contains(t, d.Handle(ctx, InboundMessage{From: testPhone, Body: "help"}), "Reply 1-5")
	assert.Contains(t, d.Handle(ctx, InboundMessage{From: testPhone, Body: "STOP"}), "unsubscribed")
	assert.Contains(t, d.Handle(ctx, InboundMessage{From: testPhone, Body: "prefs"}), "preferences")
}

func TestDispatcher_SearchStoresSession(t *testing.T) {
	sessions := memory.NewSessionStore()
	d := newTestDispatcher(t, DispatcherServiceOptions{
		Deps: DispatcherDeps{Sessions: sessions},
	})

	reply := d.Handle(context.Background(), InboundMessage{From: testPhone, Body: "fence 77002"})
	assert.True(t, strings.HasPrefix(reply, "Found"), "reply %q", reply)
	assert.True(t, strings.HasSuffix(reply, "Reply 1-5 to claim job"))

	sess, err := sessions.Get(context.Background(), testPhone)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Jobs)
}

func TestDispatcher_SearchNoMatches(t *testing.T) {
	d := newTestDispatcher(t, DispatcherServiceOptions{})

	reply := d.Handle(context.Background(), InboundMessage{From: testPhone, Body: "fencing 99999"})
	assert.Contains(t, reply, "No jobs found")
}

func TestDispatcher_ClaimFlow(t *testing.T) {
	sessions := memory.NewSessionStore()
	d := newTestDispatcher(t, DispatcherServiceOptions{
		Deps: DispatcherDeps{Sessions: sessions},
	})
	ctx := context.Background()

	jobs := []model.JobSearchResult{
		{ID: "j1", Title: "Fence repair", Address: "1200 Travis St"},
		{ID: "j2", Title: "Sink leak", Address: "803 Main St"},
		{ID: "j3", Title: "Roof patch", Address: "115 Mason Rd"},
	}
	require.NoError(t, sessions.Save(ctx, testPhone, jobs))

	// In-range claims cite the job's title and address.
	for n, job := range jobs {
		reply := d.Handle(ctx, InboundMessage{From: testPhone, Body: strconv.Itoa(n + 1)})
		assert.Contains(t, reply, job.Title)
		assert.Contains(t, reply, job.Address)
	}

	// Out-of-range claims get the invalid-number message.
	assert.Contains(t, d.Handle(ctx, InboundMessage{From: testPhone, Body: "4"}), "Invalid job number")

	// Claiming does not consume the session.
	reply := d.Handle(ctx, InboundMessage{From: testPhone, Body: "claim 2"})
	assert.Contains(t, reply, "Sink leak")
}

func TestDispatcher_ClaimWithoutSession(t *testing.T) {
	d := newTestDispatcher(t, DispatcherServiceOptions{})

	reply := d.Handle(context.Background(), InboundMessage{From: testPhone, Body: "3"})
	assert.Contains(t, reply, "No recent search")
}

func TestDispatcher_ClaimSweepsExpiredSessions(t *testing.T) {
	now := time.Now()
	sessions := memory.NewSessionStoreWithClock(func() time.Time { return now })
	d := newTestDispatcher(t, DispatcherServiceOptions{
		Deps: DispatcherDeps{Sessions: sessions},
	})
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, testPhone, []model.JobSearchResult{{ID: "j1", Title: "Fence", Address: "X"}}))

	now = now.Add(11 * time.Minute)

	reply := d.Handle(ctx, InboundMessage{From: testPhone, Body: "1"})
	assert.Contains(t, reply, "No recent search")
	assert.Zero(t, sessions.Len(), "inbound handling sweeps expired sessions for all phones")
}

func TestDispatcher_DigestStoresSession(t *testing.T) {
	sessions := memory.NewSessionStore()
	prefs := &mockPreferenceRepository{}
	prefs.On("GetByPhone", mock.Anything, testPhone).Return(nil, errors.New("prefs store down"))

	d := newTestDispatcher(t, DispatcherServiceOptions{
		Deps: DispatcherDeps{Sessions: sessions, Prefs: prefs},
	})

	// A failing preference store never blocks the digest.
	reply := d.Handle(context.Background(), InboundMessage{From: testPhone, Body: "digest"})
	assert.True(t, strings.HasPrefix(reply, "Found"), "reply %q", reply)

	sess, err := sessions.Get(context.Background(), testPhone)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Jobs)
	assert.LessOrEqual(t, len(sess.Jobs), core.ResultLimit)
	prefs.AssertExpectations(t)
}

func TestDispatcher_PhotoWithoutAnalyzer(t *testing.T) {
	d := newTestDispatcher(t, DispatcherServiceOptions{})

	reply := d.Handle(context.Background(), InboundMessage{
		From:     testPhone,
		Body:     "what would this cost?",
		MediaURL: "https://example.com/photo.jpg",
	})
	assert.Contains(t, reply, "professional assessment")
}

func TestDispatcher_PhotoAnalyzerSuccessAndFailure(t *testing.T) {
	analyzer := &mockImageAnalyzer{}
	analyzer.On("Assess", mock.Anything, "https://example.com/ok.jpg").
		Return("Looks like a burst pipe. Plumbing, $200-$400.", nil)
	analyzer.On("Assess", mock.Anything, "https://example.com/bad.jpg").
		Return("", errors.New("model timeout"))

	d := newTestDispatcher(t, DispatcherServiceOptions{
		Deps: DispatcherDeps{Vision: analyzer},
	})
	ctx := context.Background()

	ok := d.Handle(ctx, InboundMessage{From: testPhone, Body: "photo", MediaURL: "https://example.com/ok.jpg"})
	assert.Contains(t, ok, "burst pipe")

	// Analyzer failure degrades to the same static fallback as no analyzer.
	bad := d.Handle(ctx, InboundMessage{From: testPhone, Body: "photo", MediaURL: "https://example.com/bad.jpg"})
	assert.Contains(t, bad, "professional assessment")
	analyzer.AssertExpectations(t)
}

func TestDispatcher_RecoverFromPanic(t *testing.T) {
	d := newTestDispatcher(t, DispatcherServiceOptions{
		Deps: DispatcherDeps{Sessions: panickySessionStore{}},
	})

	reply := d.Handle(context.Background(), InboundMessage{From: testPhone, Body: "fence 77002"})
	assert.Contains(t, reply, "Something went wrong")
}

// panickySessionStore blows up on every call to exercise Handle's recovery.
type panickySessionStore struct{}

func (panickySessionStore) Save(context.Context, string, []model.JobSearchResult) error {
	panic("save boom")
}

func (panickySessionStore) Get(context.Context, string) (model.SearchSession, error) {
	panic("get boom")
}

func (panickySessionStore) Sweep(context.Context) error {
	panic("sweep boom")
}
