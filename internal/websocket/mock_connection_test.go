package websocket

import (
	"errors"
	"sync"
	"time"
)

// mockConnection records written frames. ReadMessage blocks until Close,
// like an idle browser tab.
type mockConnection struct {
	mu      sync.Mutex
	written [][]byte
	types   []int
	closed  bool

	writes chan []byte
	closeC chan struct{}
	once   sync.Once
}

func newMockConnection() *mockConnection {
	return &mockConnection{
		writes: make(chan []byte, 64),
		closeC: make(chan struct{}),
	}
}

func (m *mockConnection) WriteMessage(messageType int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.New("connection closed")
	}
	m.types = append(m.types, messageType)
	m.written = append(m.written, data)
	select {
	case m.writes <- data:
	default:
	}
	return nil
}

func (m *mockConnection) ReadMessage() (int, []byte, error) {
	<-m.closeC
	return 0, nil, errors.New("connection closed")
}

func (m *mockConnection) Close() error {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		close(m.closeC)
	})
	return nil
}

func (m *mockConnection) SetReadDeadline(time.Time) error   { return nil }
func (m *mockConnection) SetWriteDeadline(time.Time) error  { return nil }
func (m *mockConnection) SetReadLimit(int64)                {}
func (m *mockConnection) SetPongHandler(func(string) error) {}
func (m *mockConnection) RemoteAddr() string                { return "127.0.0.1:50000" }

func (m *mockConnection) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
