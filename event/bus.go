package event

// Handler receives notifications synchronously on the publishing goroutine
type Handler func(Notification)

// Bus fans notifications out to subscribers by kind
type Bus struct {
	handlers map[Kind][]Handler
	all      []Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

// Subscribe registers h for the given kinds, or for every kind when none are given
func (b *Bus) Subscribe(h Handler, kinds ...Kind) {
	if len(kinds) == 0 {
		b.all = append(b.all, h)
		return
	}
	for _, k := range kinds {
		b.handlers[k] = append(b.handlers[k], h)
	}
}

// Publish delivers n to kind subscribers first, then to catch-all subscribers
func (b *Bus) Publish(n Notification) {
	for _, h := range b.handlers[n.Kind] {
		h(n)
	}
	for _, h := range b.all {
		h(n)
	}
}
