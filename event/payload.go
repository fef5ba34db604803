package event

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/agent"
)

// Notification is published by the simulation after a population change
type Notification struct {
	Kind     Kind
	Role     agent.Role
	Handle   agent.Handle
	Position r2.Vec
	Time     float64 // simulated seconds

	// Partner is the other agent of a contact (the police for a capture)
	Partner agent.Handle
}
