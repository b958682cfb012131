package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu                sync.RWMutex
	SignupsTotal      int64
	QuestionsAsked    int64
	AnswersRecorded   int64
	ScoresComputed    int64
	Transcriptions    int64
	GatewayCalls      int64
	GatewaySuccessful int64
	LastUpdateTime    time.Time
}

// Snapshot is a copy of the counters safe to serialize.
type Snapshot struct {
	SignupsTotal      int64     `json:"signups_total"`
	QuestionsAsked    int64     `json:"questions_asked"`
	AnswersRecorded   int64     `json:"answers_recorded"`
	ScoresComputed    int64     `json:"scores_computed"`
	Transcriptions    int64     `json:"transcriptions"`
	GatewayCalls      int64     `json:"gateway_calls"`
	GatewaySuccessful int64     `json:"gateway_successful"`
	LastUpdateTime    time.Time `json:"last_update_time"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementSignups() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignupsTotal++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementQuestionsAsked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsAsked++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAnswersRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnswersRecorded++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementScoresComputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoresComputed++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementTranscriptions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transcriptions++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementGatewayCall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GatewayCalls++
	if success {
		m.GatewaySuccessful++
	}
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		SignupsTotal:      m.SignupsTotal,
		QuestionsAsked:    m.QuestionsAsked,
		AnswersRecorded:   m.AnswersRecorded,
		ScoresComputed:    m.ScoresComputed,
		Transcriptions:    m.Transcriptions,
		GatewayCalls:      m.GatewayCalls,
		GatewaySuccessful: m.GatewaySuccessful,
		LastUpdateTime:    m.LastUpdateTime,
	}
}
