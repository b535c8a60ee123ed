package factory

import (
	"time"

	"github.com/mcoot/eventease/internal/dependencies/mocks"
	"github.com/mcoot/eventease/internal/dependencies/random"
	"github.com/mcoot/eventease/internal/notify"
	"github.com/mcoot/eventease/internal/storage"
	"github.com/mcoot/eventease/internal/storage/memory"
	"github.com/mcoot/eventease/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an in-memory App configured for testing with mocked dependencies
func NewTestApp(extra ...notify.Publisher) *TestApp {
	return NewTestAppWithStorage(memory.New(), extra...)
}

// NewTestAppWithStorage creates a test App on the given storage backend.
// The mock random falls back to real codes once its queue is empty.
func NewTestAppWithStorage(store storage.Storage, extra ...notify.Publisher) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockRandom.Fallback = random.New()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger(), 0, extra...)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
