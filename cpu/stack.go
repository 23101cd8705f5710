package cpu

const (
	REG_SP  = 7    // Register used as the stack pointer.
	SP_INIT = 0xf4 // Stack pointer at reset; the stack grows down from here.
)

// Push decrements SP, then writes value to memory[SP].
//
// The stack is not bounded; over-pushing runs into program memory.
func (cpu *Cpu) Push(value uint8) (err error) {
	sp := cpu.Register[REG_SP] - 1
	err = cpu.WriteMemory(int(sp), value)
	if err != nil {
		return
	}
	cpu.Register[REG_SP] = sp
	return
}

// Pop reads memory[SP], then increments SP.
func (cpu *Cpu) Pop() (value uint8, err error) {
	sp := cpu.Register[REG_SP]
	value, err = cpu.ReadMemory(int(sp))
	if err != nil {
		return
	}
	cpu.Register[REG_SP] = sp + 1
	return
}

// Peek returns the top of stack without moving SP.
func (cpu *Cpu) Peek() (value uint8, err error) {
	return cpu.ReadMemory(int(cpu.Register[REG_SP]))
}

// Depth returns the number of bytes pushed below SP_INIT.
// It is meaningless once SP has been moved above SP_INIT.
func (cpu *Cpu) Depth() int {
	return SP_INIT - int(cpu.Register[REG_SP])
}

// pushRegister decrements SP, then writes register[reg] to memory[SP].
//
// For reg == REG_SP the stored value is the decremented SP.
func (cpu *Cpu) pushRegister(reg int) (err error) {
	_, err = cpu.ReadRegister(reg)
	if err != nil {
		return
	}

	cpu.Register[REG_SP]--
	err = cpu.WriteMemory(int(cpu.Register[REG_SP]), cpu.Register[reg])
	return
}

// popRegister sets register[reg] from memory[SP], then increments SP.
//
// For reg == REG_SP the popped value is then incremented.
func (cpu *Cpu) popRegister(reg int) (err error) {
	_, err = cpu.ReadRegister(reg)
	if err != nil {
		return
	}

	var value uint8
	value, err = cpu.Peek()
	if err != nil {
		return
	}
	cpu.Register[reg] = value
	cpu.Register[REG_SP]++
	return
}
