package operation

// State represents operation lifecycle state
type State string

const (
	StateInitialized State = "initialized"
	StatePending     State = "pending"     //enqueued, waiting for dependencies
	StateEvaluating  State = "evaluating"  //evaluating conditions
	StateReady       State = "ready"
	StateExecuting   State = "executing"
	StateFinishing   State = "finishing"
	StateFinished    State = "finished"
)

// IsTerminal returns true when no more transitions than finishing are possible
func (s State) IsTerminal() bool {
	return s == StateFinishing || s == StateFinished
}

// IsStarted returns true once the operation left the ready state
func (s State) IsStarted() bool {
	return s == StateExecuting || s.IsTerminal()
}
