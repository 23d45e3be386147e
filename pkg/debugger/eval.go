package debugger

import (
	"github.com/lc3kit/lc3kit/pkg/asm"
	"github.com/lc3kit/lc3kit/pkg/machine"
)

// eval assembles one instruction line against the current program counter
// and executes it in place. The program counter does not advance for
// straight-line instructions; control flow (JSR, JMP, BR) takes effect.
// Every failure, including an engine-level one, aborts only this command.
func (d *Debugger) eval(m *machine.Machine, line string) {
	encoder := asm.Encoder{Symbols: d.symbols, Orig: d.orig}
	word, err := encoder.Encode(line, m.State.PC())
	if err != nil {
		d.out.Error(err)
		return
	}
	d.out.Print(Sometimes, "x%04X", word)
	if err := m.Execute(word); err != nil {
		d.out.Error(err)
	}
}
