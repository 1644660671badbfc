package supervisor

// State is the lifecycle state of a supervised run
type State int

// Supervisor states, in lifecycle order
const (
	StateCreated    State = iota // 0 nothing spawned yet
	StateRunning                 // 1 child spawned and bound
	StateCompleted               // 2 child exited by itself
	StateTerminated              // 3 child killed after interrupt or setup failure
	StateCleanedUp               // 4 teardown finished (successful or not)
)

var (
	stateString = []string{
		"Created",
		"Running",
		"Completed",
		"Terminated",
		"CleanedUp",
	}
)

func (s State) String() string {
	i := int(s)
	if i >= 0 && i < len(stateString) {
		return stateString[i]
	}
	return "Invalid"
}
