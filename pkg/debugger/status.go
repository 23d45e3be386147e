package debugger

// Action is the per-instruction-boundary verdict handed back to the
// execution loop.
type Action int

const (
	// Proceed executes the instruction at the current program counter.
	Proceed Action = iota
	// StopDebugger detaches the debugger; the program keeps running.
	StopDebugger
	// ExitProgram terminates execution entirely.
	ExitProgram
)

// status is the execution control state. The debugger has no terminal
// state: termination is signaled through an Action instead.
type status interface {
	isStatus()
}

type (
	// statusWaitForAction blocks on operator input at the next boundary.
	statusWaitForAction struct{}
	// statusStep proceeds through remaining more boundaries before pausing.
	statusStep struct {
		remaining uint16
	}
	// statusNext proceeds until the program counter reaches returnAddress,
	// stepping over a subroutine call in between.
	statusNext struct {
		returnAddress uint16
	}
	// statusContinue proceeds until a breakpoint or HALT intercepts.
	statusContinue struct{}
	// statusFinish proceeds until a return instruction is about to execute.
	statusFinish struct{}
)

func (statusWaitForAction) isStatus() {}
func (statusStep) isStatus()          {}
func (statusNext) isStatus()          {}
func (statusContinue) isStatus()      {}
func (statusFinish) isStatus()        {}
