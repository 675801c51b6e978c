package spirv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jurealeksic/shadPS4/ir"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrContractViolation reports malformed input IR.
	ErrContractViolation = errors.New("contract violation")
	// ErrUnsupported reports a feature the target profile cannot express.
	ErrUnsupported = errors.New("unsupported")
)

// EmitError describes why emission of a program stopped.
type EmitError struct {
	Kind error // ErrContractViolation or ErrUnsupported
	Op   ir.Opcode
	// Block and Inst locate the instruction, -1 when absent
	Block int
	Inst  int
	// Types of the operands, for diagnosing width problems
	Types   []ir.Type
	Message string
}

// Error implements the error interface.
func (e *EmitError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Block >= 0 {
		fmt.Fprintf(&sb, " in block %d", e.Block)
		if e.Inst >= 0 {
			fmt.Fprintf(&sb, ", instruction %d", e.Inst)
		}
	}
	if e.Op != opNone {
		fmt.Fprintf(&sb, " (%s", e.Op)
		for i, t := range e.Types {
			if i == 0 {
				sb.WriteString(" ")
			} else {
				sb.WriteString(", ")
			}
			sb.WriteString(t.String())
		}
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// Is matches the error's kind.
func (e *EmitError) Is(target error) bool { return target == e.Kind }

// opNone marks errors not tied to an opcode.
const opNone = ir.NumOpcodes

func contractf(format string, args ...any) *EmitError {
	return &EmitError{Kind: ErrContractViolation, Op: opNone, Block: -1, Inst: -1, Message: fmt.Sprintf(format, args...)}
}

func unsupportedf(format string, args ...any) *EmitError {
	return &EmitError{Kind: ErrUnsupported, Op: opNone, Block: -1, Inst: -1, Message: fmt.Sprintf(format, args...)}
}

// locate attaches instruction context to err when it is an EmitError that
// does not carry any yet.
func locate(err error, inst *ir.Inst) error {
	var ee *EmitError
	if !errors.As(err, &ee) {
		return err
	}
	if ee.Op == opNone {
		ee.Op = inst.Op
		ee.Types = make([]ir.Type, len(inst.Args))
		for i, a := range inst.Args {
			ee.Types[i] = a.Type()
		}
	}
	if ee.Block < 0 && inst.Block() != nil {
		ee.Block = inst.Block().Index
		for i, x := range inst.Block().Insts {
			if x == inst {
				ee.Inst = i
			}
		}
	}
	return ee
}
