package canteen

type Status string

const (
	StatusPlaced    Status = "placed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusPicked    Status = "picked"
)

var validNext = map[Status]map[Status]bool{
	StatusPlaced:    {StatusPreparing: true},
	StatusPreparing: {StatusReady: true},
	StatusReady:     {StatusPicked: true},
	StatusPicked:    {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
