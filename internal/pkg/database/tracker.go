package database

import (
	"sync/atomic"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/description"

	"farminventory/internal/pkg/logger"
)

// State é o estado atual do link com o MongoDB.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateErrored:
		return "errored"
	default:
		return "disconnected"
	}
}

// Tracker guarda o estado da conexão. Escrito pelos callbacks do driver e
// pelo bootstrap; lido (sem efeitos colaterais) pelo gate e pelo /health.
type Tracker struct {
	state atomic.Int32
	log   logger.Logger
}

// NewTracker cria um Tracker no estado "disconnected".
func NewTracker(log logger.Logger) *Tracker {
	return &Tracker{log: log}
}

// State devolve o estado atual.
func (t *Tracker) State() State {
	return State(t.state.Load())
}

// IsConnected é a visão booleana usada pelo gate.
func (t *Tracker) IsConnected() bool {
	return t.State() == StateConnected
}

func (t *Tracker) set(next State, err error) {
	prev := State(t.state.Swap(int32(next)))
	if prev == next {
		return
	}
	fields := map[string]interface{}{"from": prev.String(), "to": next.String()}
	if err != nil {
		t.log.Error("Estado da conexão MongoDB alterado", err, fields)
		return
	}
	t.log.Info("Estado da conexão MongoDB alterado", fields)
}

func (t *Tracker) MarkConnecting() { t.set(StateConnecting, nil) }
func (t *Tracker) MarkConnected() { t.set(StateConnected, nil) }
func (t *Tracker) MarkErrored(err error) { t.set(StateErrored, err) }
func (t *Tracker) MarkDisconnected() { t.set(StateDisconnected, nil) }

// Monitor liga o Tracker aos eventos SDAM do driver.
func (t *Tracker) Monitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		TopologyDescriptionChanged: t.onTopologyChanged,
		TopologyClosed: func(*event.TopologyClosedEvent) {
			t.MarkDisconnected()
		},
	}
}

func (t *Tracker) onTopologyChanged(evt *event.TopologyDescriptionChangedEvent) {
	if available, lastErr := inspectTopology(evt.NewDescription); available {
		t.MarkConnected()
	} else if t.State() == StateConnected {
		// Perdemos o último servidor disponível.
		t.MarkErrored(lastErr)
	}
}

// inspectTopology diz se algum servidor está utilizável e devolve o último erro visto.
func inspectTopology(topo description.Topology) (bool, error) {
	var lastErr error
	for _, srv := range topo.Servers {
		if srv.Kind != description.Unknown {
			return true, nil
		}
		if srv.LastError != nil {
			lastErr = srv.LastError
		}
	}
	return false, lastErr
}
