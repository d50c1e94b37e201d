package reveal

import "sync"

// ChannelPort is a VisibilityPort fed by Emit, used by bridges that receive
// observer callbacks from elsewhere.
type ChannelPort struct {
	mu     sync.Mutex
	events chan Intersection
	closed bool
}

func NewChannelPort(buffer int) *ChannelPort {
	return &ChannelPort{events: make(chan Intersection, buffer)}
}

func (p *ChannelPort) Events() <-chan Intersection {
	return p.events
}

// Emit reports false when the port is disconnected or its buffer is full.
func (p *ChannelPort) Emit(ratio float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}
	select {
	case p.events <- Intersection{Ratio: ratio}:
		return true
	default:
		return false
	}
}

func (p *ChannelPort) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.closed = true
		close(p.events)
	}
}

func (p *ChannelPort) Disconnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
