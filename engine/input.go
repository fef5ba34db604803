package engine

import "gonum.org/v1/gonum/spatial/r2"

// InputKind is a user request forwarded by the host
type InputKind uint8

const (
	InputAddCar InputKind = iota
	InputAddPolice
	InputClearAll
	InputAddObstacle
	InputReset
)

func (k InputKind) String() string {
	switch k {
	case InputAddCar:
		return "add-car"
	case InputAddPolice:
		return "add-police"
	case InputClearAll:
		return "clear-all"
	case InputAddObstacle:
		return "add-obstacle"
	case InputReset:
		return "reset"
	default:
		return "unknown"
	}
}

// InputEvent carries a world-space point for InputAddObstacle
type InputEvent struct {
	Kind  InputKind
	Point r2.Vec
}

// HandleInput applies one user request
func (s *Simulation) HandleInput(in InputEvent) {
	switch in.Kind {
	case InputAddCar:
		s.SpawnCar()
	case InputAddPolice:
		s.SpawnPolice()
	case InputClearAll:
		s.ClearAllCarsAndPolice()
	case InputAddObstacle:
		s.SpawnObstacle(in.Point)
	case InputReset:
		s.ResetScene()
	default:
		s.log.Warn("unknown input", "kind", in.Kind)
	}
}
