package vm

import (
	"fmt"
	"io"
)

const (
	stackBase        = 256
	tempBase         = 5
	maxStaticVars    = 240
	eqImplLabel      = "__EQ_IMPL"
	gtImplLabel      = "__GT_IMPL"
	ltImplLabel      = "__LT_IMPL"
	returnImplLabel  = "__RETURN_IMPL"
	callImplLabel    = "__CALL_IMPL"
	bootstrapRetName = "__BOOTSTRAP_RET"
	infiniteLoopName = "__INFINITE_LOOP"
)

// Coder is the VM code emitter. It owns the process-wide monotone counters
// used to synthesise unique return-site labels for call/eq/lt/gt — these
// must stay unique across every file in one translator run, so one Coder is
// shared across the whole invocation rather than reset per file.
type Coder struct {
	callCount uint64
	eqCount   uint64
	ltCount   uint64
	gtCount   uint64
}

// NewCoder returns a Coder with all counters at zero.
func NewCoder() *Coder { return &Coder{} }

// WritePrologue emits the one-time runtime prologue: the bootstrap sequence
// (SP=256, call Sys.init, infinite-loop guard) followed by the shared
// __EQ_IMPL/__GT_IMPL/__LT_IMPL/__RETURN_IMPL/__CALL_IMPL trampolines. It
// must run exactly once, before any per-instruction emission.
func (c *Coder) WritePrologue(out io.Writer) error {
	fmt.Fprintf(out, "@%d\nD=A\n@SP\nM=D\n", stackBase)
	if err := c.writeBootstrapCall(out); err != nil {
		return err
	}
	fmt.Fprintf(out, "(%s)\n@%s\n0;JMP\n", infiniteLoopName, infiniteLoopName)

	writeCmpTrampoline(out, eqImplLabel, "JNE")
	writeCmpTrampoline(out, gtImplLabel, "JLE")
	writeCmpTrampoline(out, ltImplLabel, "JGE")
	writeReturnTrampoline(out)
	writeCallTrampoline(out)
	return nil
}

// writeBootstrapCall inlines the call protocol to invoke Sys.init with 0
// arguments, landing back at bootstrapRetName once it returns.
func (c *Coder) writeBootstrapCall(out io.Writer) error {
	fmt.Fprintf(out, "@0\nD=A\n@R13\nM=D\n@Sys.init\nD=A\n@R14\nM=D\n@%s\nD=A\n@%s\n0;JMP\n(%s)\n",
		bootstrapRetName, callImplLabel, bootstrapRetName)
	return nil
}

func writeCmpTrampoline(out io.Writer, label, jumpOnDifferent string) {
	endLabel := "END_" + label
	fmt.Fprintf(out, "(%s)\n@R15\nM=D\n@SP\nAM=M-1\nD=M\nA=A-1\nD=M-D\nM=0\n@%s\nD;%s\n@SP\nA=M-1\nM=-1\n(%s)\n@R15\nA=M\n0;JMP\n",
		label, endLabel, jumpOnDifferent, endLabel)
}

func writeReturnTrampoline(out io.Writer) {
	fmt.Fprintf(out, "(%s)\n", returnImplLabel)
	fmt.Fprintf(out, "@%d\nD=A\n@LCL\nA=M-D\nD=M\n@R13\nM=D\n", tempBase)
	fmt.Fprint(out, "@SP\nAM=M-1\nD=M\n@ARG\nA=M\nM=D\nD=A\n@SP\nM=D+1\n")
	fmt.Fprint(out, "@LCL\nD=M\n@R14\nAM=D-1\nD=M\n@THAT\nM=D\n")
	fmt.Fprint(out, "@R14\nAM=M-1\nD=M\n@THIS\nM=D\n")
	fmt.Fprint(out, "@R14\nAM=M-1\nD=M\n@ARG\nM=D\n")
	fmt.Fprint(out, "@R14\nAM=M-1\nD=M\n@LCL\nM=D\n")
	fmt.Fprint(out, "@R13\nA=M\n0;JMP\n")
}

func writeCallTrampoline(out io.Writer) {
	fmt.Fprintf(out, "(%s)\n", callImplLabel)
	fmt.Fprint(out, "@SP\nA=M\nM=D\n")
	fmt.Fprint(out, "@LCL\nD=M\n@SP\nAM=M+1\nM=D\n")
	fmt.Fprint(out, "@ARG\nD=M\n@SP\nAM=M+1\nM=D\n")
	fmt.Fprint(out, "@THIS\nD=M\n@SP\nAM=M+1\nM=D\n")
	fmt.Fprint(out, "@THAT\nD=M\n@SP\nAM=M+1\nM=D\n")
	fmt.Fprint(out, "@4\nD=A\n@R13\nD=D+M\n@SP\nD=M-D\n@ARG\nM=D\n")
	fmt.Fprint(out, "@SP\nMD=M+1\n@LCL\nM=D\n")
	fmt.Fprint(out, "@R14\nA=M\n0;JMP\n")
}

// WriteCommand emits the assembly fragment for one parsed VM instruction,
// under the given translation context.
func (c *Coder) WriteCommand(out io.Writer, cmd Command, ctx *Context) error {
	switch ins := cmd.(type) {
	case Function:
		return writeFunction(out, ctx, ins)
	case Call:
		c.callCount++
		return writeCall(out, ctx, ins, c.callCount)
	case Return:
		fmt.Fprintf(out, "@%s\n0;JMP\n", returnImplLabel)
		return nil
	case Push:
		return writePush(out, ctx, ins)
	case Pop:
		return writePop(out, ctx, ins)
	case Label:
		fmt.Fprintf(out, "(%s.%s$%s)\n", ctx.FileName, ctx.FunctionName, ins.Name)
		return nil
	case Goto:
		fmt.Fprintf(out, "@%s.%s$%s\n0;JMP\n", ctx.FileName, ctx.FunctionName, ins.Name)
		return nil
	case IfGoto:
		fmt.Fprintf(out, "@SP\nAM=M-1\nD=M\n@%s.%s$%s\nD;JNE\n", ctx.FileName, ctx.FunctionName, ins.Name)
		return nil
	case Add:
		fmt.Fprint(out, "@SP\nAM=M-1\nD=M\nA=A-1\nM=D+M\n")
		return nil
	case Sub:
		fmt.Fprint(out, "@SP\nAM=M-1\nD=M\nA=A-1\nM=M-D\n")
		return nil
	case Neg:
		fmt.Fprint(out, "@SP\nA=M-1\nM=-M\n")
		return nil
	case And:
		fmt.Fprint(out, "@SP\nAM=M-1\nD=M\nA=A-1\nM=D&M\n")
		return nil
	case Or:
		fmt.Fprint(out, "@SP\nAM=M-1\nD=M\nA=A-1\nM=D|M\n")
		return nil
	case Not:
		fmt.Fprint(out, "@SP\nA=M-1\nM=!M\n")
		return nil
	case Eq:
		c.eqCount++
		writeCmpCall(out, eqImplLabel, "EQ", c.eqCount)
		return nil
	case Lt:
		c.ltCount++
		writeCmpCall(out, ltImplLabel, "LT", c.ltCount)
		return nil
	case Gt:
		c.gtCount++
		writeCmpCall(out, gtImplLabel, "GT", c.gtCount)
		return nil
	default:
		return fmt.Errorf("unrecognised vm command %T", cmd)
	}
}

func writeFunction(out io.Writer, ctx *Context, ins Function) error {
	label := fmt.Sprintf("%s.%s", ctx.FileName, ins.Name)
	switch ins.Locals {
	case 0:
		fmt.Fprintf(out, "(%s)\n", label)
	case 1:
		fmt.Fprintf(out, "(%s)\n@SP\nAM=M+1\nA=A-1\nM=0\n", label)
	case 2:
		fmt.Fprintf(out, "(%s)\n@SP\nAM=M+1\nA=A-1\nM=0\n@SP\nAM=M+1\nA=A-1\nM=0\n", label)
	default:
		loop := fmt.Sprintf("__LOOP_%s", label)
		fmt.Fprintf(out, "(%s)\n@%d\nD=A\n(%s)\nD=D-1\n@SP\nAM=M+1\nA=A-1\nM=0\n@%s\nD;JGT\n",
			label, ins.Locals, loop, loop)
	}
	return nil
}

func writeCall(out io.Writer, ctx *Context, ins Call, count uint64) error {
	retLabel := fmt.Sprintf("%s.%s$ret.%d", ctx.FileName, ins.Target, count)
	fmt.Fprintf(out, "@%d\nD=A\n@R13\nM=D\n@%s.%s\nD=A\n@R14\nM=D\n@%s\nD=A\n@%s\n0;JMP\n(%s)\n",
		ins.Argc, ctx.FileName, ins.Target, retLabel, callImplLabel, retLabel)
	return nil
}

func writeCmpCall(out io.Writer, implLabel, tag string, count uint64) {
	retLabel := fmt.Sprintf("__RET_%s%d", tag, count)
	fmt.Fprintf(out, "@%s\nD=A\n@%s\n0;JMP\n(%s)\n", retLabel, implLabel, retLabel)
}

func writePush(out io.Writer, ctx *Context, ins Push) error {
	if ins.Segment == Constant {
		switch ins.Index {
		case 0:
			fmt.Fprint(out, "@SP\nM=M+1\nA=M-1\nM=0\n")
		case 1:
			fmt.Fprint(out, "@SP\nM=M+1\nA=M-1\nM=1\n")
		default:
			fmt.Fprintf(out, "@%d\nD=A\n@SP\nM=M+1\nA=M-1\nM=D\n", ins.Index)
		}
		return nil
	}
	label, err := segmentLabel(ctx, ins.Segment, ins.Index)
	if err != nil {
		return err
	}
	if ins.Segment == Static || ins.Segment == Pointer || ins.Segment == Temp {
		fmt.Fprintf(out, "@%s\nD=M\n@SP\nAM=M+1\nA=A-1\nM=D\n", label)
		return nil
	}
	switch ins.Index {
	case 0:
		fmt.Fprintf(out, "@%s\nA=M\nD=M\n@SP\nAM=M+1\nA=A-1\nM=D\n", label)
	case 1:
		fmt.Fprintf(out, "@%s\nA=M+1\nD=M\n@SP\nAM=M+1\nA=A-1\nM=D\n", label)
	default:
		fmt.Fprintf(out, "@%d\nD=A\n@%s\nA=M+D\nD=M\n@SP\nAM=M+1\nA=A-1\nM=D\n", ins.Index, label)
	}
	return nil
}

func writePop(out io.Writer, ctx *Context, ins Pop) error {
	if ins.Segment == Constant {
		return nil // pop constant is a no-op
	}
	label, err := segmentLabel(ctx, ins.Segment, ins.Index)
	if err != nil {
		return err
	}
	if ins.Segment == Static || ins.Segment == Pointer || ins.Segment == Temp {
		fmt.Fprintf(out, "@SP\nM=M-1\nA=M\nD=M\n@%s\nM=D\n", label)
		return nil
	}
	switch ins.Index {
	case 0:
		fmt.Fprintf(out, "@%s\nD=M\n@SP\nAM=M-1\nD=D+M\nA=D-M\nM=D-A\n", label)
	case 1:
		fmt.Fprintf(out, "@%s\nD=M+1\n@SP\nAM=M-1\nD=D+M\nA=D-M\nM=D-A\n", label)
	default:
		fmt.Fprintf(out, "@%d\nD=A\n@%s\nD=D+M\n@SP\nAM=M-1\nD=D+M\nA=D-M\nM=D-A\n", ins.Index, label)
	}
	return nil
}

func segmentLabel(ctx *Context, seg Segment, index uint16) (string, error) {
	switch seg {
	case Argument:
		return "ARG", nil
	case Local:
		return "LCL", nil
	case This:
		return "THIS", nil
	case That:
		return "THAT", nil
	case Pointer:
		switch index {
		case 0:
			return "THIS", nil
		case 1:
			return "THAT", nil
		default:
			return "", &IndexOutOfBoundsError{Segment: seg, Index: index, Min: 0, Max: 1}
		}
	case Temp:
		if index > 7 {
			return "", &IndexOutOfBoundsError{Segment: seg, Index: index, Min: 0, Max: 7}
		}
		return fmt.Sprintf("R%d", tempBase+index), nil
	case Static:
		if index >= maxStaticVars {
			return "", &IndexOutOfBoundsError{Segment: seg, Index: index, Min: 0, Max: maxStaticVars - 1}
		}
		return fmt.Sprintf("%s.%d", ctx.FileName, index), nil
	default:
		return "", fmt.Errorf("unrecognised segment %q", seg)
	}
}
