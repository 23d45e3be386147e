package machine

import "errors"

// ErrEngineFault marks unrecoverable execution failures: a reserved opcode,
// RTI outside supervisor mode or an unknown trap vector. The machine state
// is undefined afterwards; callers must not resume.
var ErrEngineFault = errors.New("engine fault")
