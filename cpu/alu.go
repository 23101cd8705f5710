package cpu

// AluOp is an ALU operation type.
type AluOp int

const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_MUL = AluOp(1) // mul
	ALU_OP_CMP = AluOp(2) // cmp
)

func (op AluOp) String() string {
	switch op {
	case ALU_OP_ADD:
		return "add"
	case ALU_OP_MUL:
		return "mul"
	case ALU_OP_CMP:
		return "cmp"
	}
	return "alu?"
}

// alu performs op on registers reg_a and reg_b.
// ADD and MUL write reg_a, modulo 256. CMP writes only the flags.
func (cpu *Cpu) alu(op AluOp, reg_a, reg_b int) (err error) {
	a, err := cpu.ReadRegister(reg_a)
	if err != nil {
		return
	}
	b, err := cpu.ReadRegister(reg_b)
	if err != nil {
		return
	}

	switch op {
	case ALU_OP_ADD:
		err = cpu.WriteRegister(reg_a, a+b)
	case ALU_OP_MUL:
		err = cpu.WriteRegister(reg_a, a*b)
	case ALU_OP_CMP:
		cpu.Flags = compareFlags(a, b)
	default:
		panic("unknown ALU op " + op.String())
	}

	return
}
