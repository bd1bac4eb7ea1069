// Package vmdemo is a minimal reference interpreter for the code
// objects the compiler package emits. It exists to smoke-test a
// generated *codeobj.CodeObj by actually running it, the same role
// runtime/funcvm.go plays for the teacher's assembler output: a small
// stack machine, not a production runtime.
//
// Closures, classes, and methods are out of scope here — it covers the
// scalar/arithmetic/control-flow core plus list iteration. Attribute
// loads and stores, method and keyword calls, class building, and the
// BINARY_AND/BINARY_OR opcodes are not supported: Run returns an error
// when it reaches one of them.
package vmdemo

import (
	"fmt"

	"github.com/PuerkitoBio/gocoro"
	"github.com/sstadick/erg/codeobj"
	"github.com/sstadick/erg/opcode"
	"github.com/sstadick/erg/value"
)

// Builtin is a host function reachable from CALL_FUNCTION, keyed by
// the global name it was stored under.
type Builtin func(args []value.Value) (value.Value, error)

// Machine runs code objects against a fixed set of builtins, mirroring
// how agoraFuncVM.run shares one ctx.Arithmetic/ctx.Comparer across
// every call frame.
type Machine struct {
	Builtins map[string]Builtin
}

// New returns a Machine pre-loaded with the small builtin set the
// compiler's intrinsic lowering assumes exists: `range`, `print`, and
// `len`.
func New() *Machine {
	m := &Machine{Builtins: map[string]Builtin{}}
	m.Builtins["range"] = builtinRange
	m.Builtins["print"] = builtinPrint
	m.Builtins["len"] = builtinLen
	return m
}

// frame is one call's mutable execution state.
type frame struct {
	obj     *codeobj.CodeObj
	globals map[string]value.Value
	locals  []value.Value
	cells   []value.Value
	stack   []value.Value
	pc      int
	iters   []gocoro.Coro
}

func newFrame(obj *codeobj.CodeObj, globals map[string]value.Value) *frame {
	return &frame{
		obj:     obj,
		globals: globals,
		locals:  make([]value.Value, len(obj.Varnames)),
		cells:   make([]value.Value, len(obj.Cellvars)+len(obj.Freevars)),
		stack:   make([]value.Value, 0, obj.Stacksize),
	}
}

func (f *frame) push(v value.Value) { f.stack = append(f.stack, v) }

func (f *frame) pop() value.Value {
	n := len(f.stack) - 1
	v := f.stack[n]
	f.stack = f.stack[:n]
	return v
}

func (f *frame) top() value.Value { return f.stack[len(f.stack)-1] }

// Run executes obj's top-level instruction stream and returns whatever
// value it RETURN_VALUEs, or the error from the first unsupported
// opcode or raised assertion.
func (m *Machine) Run(obj *codeobj.CodeObj, globals map[string]value.Value) (value.Value, error) {
	if globals == nil {
		globals = map[string]value.Value{}
	}
	return m.runFrame(newFrame(obj, globals))
}

func (m *Machine) runFrame(f *frame) (value.Value, error) {
	code := f.obj.Code
	for f.pc < len(code) {
		op := opcode.Opcode(code[f.pc])
		arg := code[f.pc+1]
		f.pc += 2

		switch op {
		case opcode.NOP:
			// no-op

		case opcode.POP_TOP:
			f.pop()

		case opcode.DUP_TOP:
			f.push(f.top())

		case opcode.LOAD_CONST:
			f.push(f.obj.Consts[arg])

		case opcode.LOAD_FAST, opcode.LOAD_NAME:
			if int(arg) < len(f.locals) && f.locals[arg] != nil {
				f.push(f.locals[arg])
				break
			}
			name := nameAt(f.obj, op, arg)
			v, ok := f.globals[name]
			if !ok {
				return nil, fmt.Errorf("vmdemo: name %q is not bound", name)
			}
			f.push(v)

		case opcode.LOAD_GLOBAL:
			name := f.obj.Names[arg]
			v, ok := f.globals[name]
			if !ok {
				return nil, fmt.Errorf("vmdemo: global %q is not bound", name)
			}
			f.push(v)

		case opcode.LOAD_DEREF:
			f.push(f.cells[arg])

		case opcode.LOAD_CLOSURE:
			f.push(f.cells[arg])

		case opcode.LOAD_ASSERTION_ERROR:
			f.push(value.Str("AssertionError"))

		case opcode.STORE_NAME, opcode.STORE_FAST, opcode.STORE_FAST_IMMUT:
			if int(arg) < len(f.locals) {
				f.locals[arg] = f.pop()
				break
			}
			name := nameAt(f.obj, op, arg)
			f.globals[name] = f.pop()

		case opcode.STORE_GLOBAL:
			f.globals[f.obj.Names[arg]] = f.pop()

		case opcode.STORE_DEREF:
			f.cells[arg] = f.pop()

		case opcode.BUILD_LIST, opcode.BUILD_TUPLE:
			n := int(arg)
			lst := make(value.List, n)
			for i := n - 1; i >= 0; i-- {
				lst[i] = f.pop()
			}
			f.push(lst)

		case opcode.UNPACK_SEQUENCE:
			lst, ok := f.pop().(value.List)
			if !ok || len(lst) != int(arg) {
				return nil, fmt.Errorf("vmdemo: UNPACK_SEQUENCE expected %d elements", arg)
			}
			for i := len(lst) - 1; i >= 0; i-- {
				f.push(lst[i])
			}

		case opcode.MATCH_SEQUENCE:
			_, ok := f.top().(value.List)
			f.push(value.Bool(ok))

		case opcode.GET_LEN:
			lst, ok := f.top().(value.List)
			if !ok {
				return nil, fmt.Errorf("vmdemo: GET_LEN on a non-list value")
			}
			f.push(value.Int(len(lst)))

		case opcode.UNARY_POSITIVE:
			// identity; erg's `+x` never changes a number's value here

		case opcode.UNARY_NEGATIVE:
			switch x := f.pop().(type) {
			case value.Int:
				f.push(-x)
			case value.Float:
				f.push(-x)
			default:
				return nil, fmt.Errorf("vmdemo: cannot negate %v", x)
			}

		case opcode.BINARY_ADD, opcode.BINARY_SUBTRACT, opcode.BINARY_MULTIPLY,
			opcode.BINARY_TRUE_DIVIDE, opcode.BINARY_MODULO, opcode.BINARY_POWER:
			y, x := f.pop(), f.pop()
			v, err := arith(op, x, y)
			if err != nil {
				return nil, err
			}
			f.push(v)

		case opcode.COMPARE_OP:
			y, x := f.pop(), f.pop()
			v, err := compare(arg, x, y)
			if err != nil {
				return nil, err
			}
			f.push(v)

		case opcode.CALL_FUNCTION:
			n := int(arg)
			args := make([]value.Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = f.pop()
			}
			callee := f.pop()
			v, err := m.call(callee, args)
			if err != nil {
				return nil, err
			}
			f.push(v)

		case opcode.MAKE_FUNCTION:
			f.pop() // name
			code := f.pop()
			f.push(code)

		case opcode.GET_ITER:
			lst, ok := f.pop().(value.List)
			if !ok {
				return nil, fmt.Errorf("vmdemo: GET_ITER on a non-list value")
			}
			f.iters = append(f.iters, newListCoro(lst))

		case opcode.FOR_ITER:
			coro := f.iters[len(f.iters)-1]
			v, err := coro.Resume()
			if err == gocoro.ErrEndOfCoro {
				f.iters = f.iters[:len(f.iters)-1]
				f.pc += int(arg) * 2
				break
			}
			if err != nil {
				return nil, err
			}
			f.push(v.(value.Value))

		case opcode.JUMP_FORWARD:
			f.pc += int(arg) * 2

		case opcode.JUMP_ABSOLUTE:
			f.pc = int(arg) * 2

		case opcode.POP_JUMP_IF_FALSE:
			if !truthy(f.pop()) {
				f.pc = int(arg) * 2
			}

		case opcode.POP_JUMP_IF_TRUE:
			if truthy(f.pop()) {
				f.pc = int(arg) * 2
			}

		case opcode.RAISE_VARARGS:
			n := int(arg)
			args := make([]value.Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = f.pop()
			}
			return nil, fmt.Errorf("vmdemo: assertion failed: %v", args)

		case opcode.RETURN_VALUE:
			return f.pop(), nil

		default:
			return nil, fmt.Errorf("vmdemo: opcode %s not supported in this reference executor", op)
		}
	}
	return value.Nil, nil
}

func nameAt(obj *codeobj.CodeObj, op opcode.Opcode, arg byte) string {
	if op == opcode.LOAD_NAME || op == opcode.STORE_NAME {
		if int(arg) < len(obj.Names) {
			return obj.Names[arg]
		}
	}
	if int(arg) < len(obj.Varnames) {
		return obj.Varnames[arg]
	}
	return ""
}

func truthy(v value.Value) bool {
	switch x := v.(type) {
	case value.Bool:
		return bool(x)
	case value.Int:
		return x != 0
	default:
		return v != value.Nil
	}
}

func (m *Machine) call(callee value.Value, args []value.Value) (value.Value, error) {
	if obj, ok := callee.(*codeobj.CodeObj); ok {
		f := newFrame(obj, map[string]value.Value{})
		for i := range f.locals {
			if i < len(args) {
				f.locals[i] = args[i]
			}
		}
		return m.runFrame(f)
	}
	if name, ok := callee.(value.Str); ok {
		if b, ok := m.Builtins[string(name)]; ok {
			return b(args)
		}
	}
	return nil, fmt.Errorf("vmdemo: %v is not callable", callee)
}

// newListCoro wraps lst behind a gocoro coroutine, the same shape
// runtime/funcvm.go's OP_RNGS/OP_RNGP pair uses: each Resume yields the
// next element, and gocoro.ErrEndOfCoro on the final Resume signals the
// loop is done, mirrored here by FOR_ITER's exhausted-iterator branch.
func newListCoro(lst value.List) gocoro.Coro {
	return gocoro.NewCoro(func(ctrl gocoro.Ctrl, _ ...interface{}) (interface{}, error) {
		for _, v := range lst {
			if _, err := ctrl.Yield(v); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
}

func arith(op opcode.Opcode, x, y value.Value) (value.Value, error) {
	xi, xok := x.(value.Int)
	yi, yok := y.(value.Int)
	if xok && yok {
		switch op {
		case opcode.BINARY_ADD:
			return xi + yi, nil
		case opcode.BINARY_SUBTRACT:
			return xi - yi, nil
		case opcode.BINARY_MULTIPLY:
			return xi * yi, nil
		case opcode.BINARY_MODULO:
			if yi == 0 {
				return nil, fmt.Errorf("vmdemo: modulo by zero")
			}
			return xi % yi, nil
		case opcode.BINARY_TRUE_DIVIDE:
			if yi == 0 {
				return nil, fmt.Errorf("vmdemo: division by zero")
			}
			return value.Float(xi) / value.Float(yi), nil
		case opcode.BINARY_POWER:
			r := value.Int(1)
			for i := value.Int(0); i < yi; i++ {
				r *= xi
			}
			return r, nil
		}
	}
	xf, xok := asFloat(x)
	yf, yok := asFloat(y)
	if !xok || !yok {
		return nil, fmt.Errorf("vmdemo: arithmetic on non-numeric values %v, %v", x, y)
	}
	switch op {
	case opcode.BINARY_ADD:
		return xf + yf, nil
	case opcode.BINARY_SUBTRACT:
		return xf - yf, nil
	case opcode.BINARY_MULTIPLY:
		return xf * yf, nil
	case opcode.BINARY_TRUE_DIVIDE:
		return xf / yf, nil
	}
	return nil, fmt.Errorf("vmdemo: unsupported float operator for opcode %s", op)
}

func asFloat(v value.Value) (value.Float, bool) {
	switch x := v.(type) {
	case value.Float:
		return x, true
	case value.Int:
		return value.Float(x), true
	default:
		return 0, false
	}
}

func compare(arg byte, x, y value.Value) (value.Value, error) {
	xf, xok := asFloat(x)
	yf, yok := asFloat(y)
	if xok && yok {
		switch arg {
		case opcode.CmpLT:
			return value.Bool(xf < yf), nil
		case opcode.CmpLE:
			return value.Bool(xf <= yf), nil
		case opcode.CmpEQ:
			return value.Bool(xf == yf), nil
		case opcode.CmpNE:
			return value.Bool(xf != yf), nil
		case opcode.CmpGT:
			return value.Bool(xf > yf), nil
		case opcode.CmpGE:
			return value.Bool(xf >= yf), nil
		}
	}
	eq := value.Equal(x, y)
	switch arg {
	case opcode.CmpEQ:
		return value.Bool(eq), nil
	case opcode.CmpNE:
		return value.Bool(!eq), nil
	}
	return nil, fmt.Errorf("vmdemo: cannot order %v and %v", x, y)
}

func builtinRange(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("vmdemo: range expects 2 arguments")
	}
	lo, ok1 := args[0].(value.Int)
	hi, ok2 := args[1].(value.Int)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("vmdemo: range expects integer bounds")
	}
	lst := make(value.List, 0, hi-lo)
	for i := lo; i < hi; i++ {
		lst = append(lst, i)
	}
	return lst, nil
}

func builtinPrint(args []value.Value) (value.Value, error) {
	parts := make([]interface{}, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Println(parts...)
	return value.Nil, nil
}

func builtinLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("vmdemo: len expects 1 argument")
	}
	lst, ok := args[0].(value.List)
	if !ok {
		return nil, fmt.Errorf("vmdemo: len expects a list")
	}
	return value.Int(len(lst)), nil
}
