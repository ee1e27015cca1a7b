package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                     sync.Mutex
	mutations              map[string]int
	recalculationDurations []float64
	malformedMatches       int
	slackNotifSent         int
	slackNotifFailed       int
	startupTime            float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		mutations:              make(map[string]int),
		recalculationDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMutation(operation, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations[operation+"/"+result]++
}

func (m *Mock) ObserveRecalculationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recalculationDurations = append(m.recalculationDurations, duration)
}

func (m *Mock) AddMalformedMatches(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.malformedMatches += count
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Mutations returns how often IncMutation was called for operation and result.
func (m *Mock) Mutations(operation, result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutations[operation+"/"+result]
}

// Recalculations returns the number of recorded recalculation durations.
func (m *Mock) Recalculations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recalculationDurations)
}

// MalformedMatches returns the total passed to AddMalformedMatches.
func (m *Mock) MalformedMatches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.malformedMatches
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
