// eval.go
//
// Tree-walking evaluator: a single type switch per statement and expression
// kind, dispatching directly over the AST node shapes from ast.go instead
// of a visitor hierarchy.
package nano

import (
	"fmt"
	"io"
	"strings"
)

// Interpreter holds the global environment, the shared diagnostic sink, and
// the stream `print`/`inspect` write to. It is the embeddable public API:
// construct once, call Run repeatedly.
type Interpreter struct {
	Globals *Env
	Rep     *Reporter
	Stdout  io.Writer
}

// NewInterpreter builds an interpreter with the global scope pre-populated
// with the built-in bindings.
func NewInterpreter(rep *Reporter, stdout io.Writer) *Interpreter {
	interp := &Interpreter{Globals: NewEnv(nil), Rep: rep, Stdout: stdout}
	registerBuiltins(interp)
	return interp
}

// Run executes a parsed program one statement at a time. A `return`
// escaping to top level is reported and swallowed so a stray return does
// not abort the rest of the program.
func (interp *Interpreter) Run(stmts []Stmt) {
	for _, s := range stmts {
		interp.runTopLevel(s)
	}
}

func (interp *Interpreter) runTopLevel(s Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(returnSignal); ok {
				fmt.Fprintln(interp.Rep.Out, "Error: 'return' used outside of function.")
				return
			}
			panic(r)
		}
	}()
	interp.exec(s, interp.Globals)
}

// --- statement execution ---------------------------------------------------

func (interp *Interpreter) exec(s Stmt, env *Env) {
	switch node := s.(type) {
	case *ExpressionStmt:
		interp.eval(node.Expr, env)
	case *BlockStmt:
		interp.execBlock(node, NewEnv(env))
	case *IfStmt:
		if interp.eval(node.Cond, env).Truthy() {
			interp.execBlock(node.Then, NewEnv(env))
		} else if node.Else != nil {
			interp.execBlock(node.Else, NewEnv(env))
		}
	case *WhileStmt:
		for interp.eval(node.Cond, env).Truthy() {
			interp.execBlock(node.Body, NewEnv(env))
		}
	case *ForStmt:
		interp.execFor(node, env)
	case *FunctionStmt:
		fn := NewFunction(node.Name, node.Params, node.Body, env)
		env.Define(node.Name, CallableVal(fn))
	case *ReturnStmt:
		var v Value
		if node.Value != nil {
			v = interp.eval(node.Value, env)
		} else {
			v = None
		}
		panic(returnSignal{value: v})
	case *ClassStmt:
		interp.execClass(node, env)
	default:
		panic(fmt.Sprintf("nano: unhandled statement type %T", s))
	}
}

// execBlock runs a block's statements in the given (already nested)
// environment.
func (interp *Interpreter) execBlock(b *BlockStmt, env *Env) {
	for _, s := range b.Stmts {
		interp.exec(s, env)
	}
}

func (interp *Interpreter) execFor(node *ForStmt, env *Env) {
	iterable := interp.eval(node.Iterable, env)
	if !iterable.IsEntity() {
		interp.Rep.runtimeErrorf(node.Line, "for-loop requires an array, got %s", interp.stringify(iterable))
		return
	}
	arr := iterable.AsEntity()
	length := arr.Size()
	for i := 0; i < length; i++ {
		elem := arr.Get(Int(int64(i)))
		loopEnv := NewEnv(env)
		loopEnv.Define(node.Var, elem)
		interp.execBlock(node.Body, loopEnv)
	}
}

func (interp *Interpreter) execClass(node *ClassStmt, env *Env) {
	classEntity := NewEntity()
	if node.Parent != "" {
		parent := env.Get(node.Parent, node.Line, interp.Rep)
		if parent.IsEntity() {
			classEntity.SetMetaentity(parent.AsEntity())
		} else if !parent.IsNone() {
			fmt.Fprintf(interp.Rep.Out, "Warning: parent '%s' is not an Entity. Inheritance ignored.\n", node.Parent)
		}
	}
	classEnv := NewClassEnv(classEntity, env)
	for _, s := range node.Body {
		interp.exec(s, classEnv)
	}
	env.Define(node.Name, EntityVal(classEntity))
}

// --- expression evaluation ---------------------------------------------------

func (interp *Interpreter) eval(e Expr, env *Env) Value {
	switch node := e.(type) {
	case *LiteralExpr:
		return node.Value
	case *GroupingExpr:
		return interp.eval(node.Inner, env)
	case *UnaryExpr:
		return interp.evalUnary(node, env)
	case *BinaryExpr:
		return interp.evalBinary(node, env)
	case *VariableExpr:
		return env.Get(node.Name, node.Line_, interp.Rep)
	case *AssignExpr:
		v := interp.eval(node.Value, env)
		env.Assign(node.Target.(*VariableExpr).Name, v)
		return v
	case *CallExpr:
		return interp.evalCall(node, env)
	case *FunctionExpr:
		fn := NewFunction(node.Name, node.Params, node.Body, env)
		v := CallableVal(fn)
		if node.Name != "" {
			env.Define(node.Name, v)
		}
		return v
	case *ArrayExpr:
		elems := make([]Value, len(node.Elements))
		for i, el := range node.Elements {
			elems[i] = interp.eval(el, env)
		}
		return EntityVal(NewArray(elems))
	case *DictExpr:
		d := NewEntity()
		for _, entry := range node.Entries {
			k := interp.eval(entry.Key, env)
			v := interp.eval(entry.Value, env)
			d.Set(k, v)
		}
		return EntityVal(d)
	case *GetExpr:
		return interp.evalGet(node, env)
	case *SetExpr:
		return interp.evalSet(node, env)
	case *TernaryExpr:
		if interp.eval(node.Cond, env).Truthy() {
			return interp.eval(node.Then, env)
		}
		return interp.eval(node.Else, env)
	case *RangeExpr:
		return interp.evalRange(node, env)
	case *DotExpr:
		return interp.evalDot(node, env)
	default:
		panic(fmt.Sprintf("nano: unhandled expression type %T", e))
	}
}

func (interp *Interpreter) evalUnary(node *UnaryExpr, env *Env) Value {
	right := interp.eval(node.Right, env)
	switch node.Op {
	case MINUS:
		if !right.IsNumber() {
			interp.Rep.runtimeErrorf(node.Line_, "Operand of '-' must be numeric.")
			return None
		}
		return Number(right.AsNumber().Neg())
	case BANG:
		return Bool(!right.Truthy())
	default:
		return None
	}
}

func (interp *Interpreter) evalBinary(node *BinaryExpr, env *Env) Value {
	left := interp.eval(node.Left, env)

	switch node.Op {
	case AND:
		if !left.Truthy() {
			return left
		}
		return interp.eval(node.Right, env)
	case OR:
		if left.Truthy() {
			return left
		}
		return interp.eval(node.Right, env)
	}

	right := interp.eval(node.Right, env)

	switch node.Op {
	case PLUS:
		return interp.evalPlus(left, right, node.Line_)
	case MINUS, STAR, SLASH, LESS, LESSEQUAL, GREATER, GREATEREQUAL:
		return interp.evalArithCompare(node.Op, left, right, node.Line_)
	case EQUALEQUAL:
		return Bool(Equal(left, right))
	case BANGEQUAL:
		return Bool(!Equal(left, right))
	default:
		return None
	}
}

func (interp *Interpreter) evalPlus(left, right Value, line int) Value {
	if left.IsNumber() && right.IsNumber() {
		return Number(left.AsNumber().Add(right.AsNumber()))
	}
	if left.IsString() || right.IsString() {
		return String(interp.stringify(left) + interp.stringify(right))
	}
	if left.IsEntity() {
		leftArr := left.AsEntity()
		n := leftArr.Size()
		combined := NewEntity()
		for i := 0; i < n; i++ {
			combined.Set(Int(int64(i)), leftArr.Get(Int(int64(i))))
		}
		if right.IsEntity() {
			rightArr := right.AsEntity()
			rn := rightArr.Size()
			for i := 0; i < rn; i++ {
				combined.Set(Int(int64(n+i)), rightArr.Get(Int(int64(i))))
			}
		} else {
			combined.Set(Int(int64(n)), right)
		}
		return EntityVal(combined)
	}
	interp.Rep.runtimeErrorf(line, "Operands of '+' must be numbers, strings, or arrays.")
	return None
}

func (interp *Interpreter) evalArithCompare(op TokenType, left, right Value, line int) Value {
	if !left.IsNumber() || !right.IsNumber() {
		interp.Rep.runtimeErrorf(line, "Operands must be numeric for arithmetic/comparison.")
		return None
	}
	l, r := left.AsNumber(), right.AsNumber()
	switch op {
	case MINUS:
		return Number(l.Sub(r))
	case STAR:
		return Number(l.Mul(r))
	case SLASH:
		if r.IsZero() {
			interp.Rep.runtimeErrorf(line, "Division by zero.")
			return None
		}
		return Number(l.Div(r))
	case GREATER:
		return Bool(l.Cmp(r) > 0)
	case GREATEREQUAL:
		return Bool(l.Cmp(r) >= 0)
	case LESS:
		return Bool(l.Cmp(r) < 0)
	case LESSEQUAL:
		return Bool(l.Cmp(r) <= 0)
	default:
		return None
	}
}

func (interp *Interpreter) evalCall(node *CallExpr, env *Env) Value {
	callee := interp.eval(node.Callee, env)
	args := make([]Value, len(node.Args))
	for i, a := range node.Args {
		args[i] = interp.eval(a, env)
	}
	if !callee.IsCallable() {
		interp.Rep.runtimeErrorf(node.Line_, "Can only call functions. Value: %s", interp.stringify(callee))
		return None
	}
	fn := callee.AsCallable()
	arity := fn.Arity()
	if arity >= 0 && len(args) != arity {
		interp.Rep.runtimeErrorf(node.Line_, "Expected %d arguments to '%s' but got %d.", arity, fn.Name(), len(args))
		return None
	}
	return fn.Call(interp, args)
}

func (interp *Interpreter) evalGet(node *GetExpr, env *Env) Value {
	obj := interp.eval(node.Obj, env)
	idx := interp.eval(node.Index, env)
	if !obj.IsEntity() {
		interp.Rep.runtimeErrorf(node.Line_, "Only tables/arrays support indexing: got %s", interp.stringify(obj))
		return None
	}
	return obj.AsEntity().Get(idx)
}

func (interp *Interpreter) evalSet(node *SetExpr, env *Env) Value {
	obj := interp.eval(node.Obj, env)
	idx := interp.eval(node.Index, env)
	val := interp.eval(node.Value, env)
	if !obj.IsEntity() {
		interp.Rep.runtimeErrorf(node.Line_, "Only tables/arrays support index assignment: %s", interp.stringify(obj))
		return None
	}
	obj.AsEntity().Set(idx, val)
	return val
}

func (interp *Interpreter) evalRange(node *RangeExpr, env *Env) Value {
	startV := interp.eval(node.Start, env)
	endV := interp.eval(node.End, env)
	start := interp.toNumberOrZero(startV, node.Line_)
	end := interp.toNumberOrZero(endV, node.Line_)

	var step Decimal
	if node.Step != nil {
		stepV := interp.eval(node.Step, env)
		step = interp.toNumberOrZero(stepV, node.Line_)
		if step.IsZero() {
			interp.Rep.runtimeErrorf(node.Line_, "Range step cannot be zero.")
			return EntityVal(NewEntity())
		}
	} else if start.Cmp(end) <= 0 {
		step = decimalOne
	} else {
		step = decimalOne.Neg()
	}

	arr := NewEntity()
	index := 0
	current := start
	if step.Cmp(decimalZero) > 0 {
		for current.Cmp(end) <= 0 {
			arr.Set(Int(int64(index)), Number(current))
			index++
			current = current.Add(step)
		}
	} else {
		for current.Cmp(end) >= 0 {
			arr.Set(Int(int64(index)), Number(current))
			index++
			current = current.Add(step)
		}
	}
	return EntityVal(arr)
}

func (interp *Interpreter) toNumberOrZero(v Value, line int) Decimal {
	if v.IsNumber() {
		return v.AsNumber()
	}
	interp.Rep.runtimeErrorf(line, "Expected numeric range boundary, got %s", interp.stringify(v))
	return decimalZero
}

func (interp *Interpreter) evalDot(node *DotExpr, env *Env) Value {
	obj := interp.eval(node.Obj, env)
	if !obj.IsEntity() {
		interp.Rep.runtimeErrorf(node.Line_, "Only tables or class entities support '.' property access. Got %s", interp.stringify(obj))
		return None
	}
	return obj.AsEntity().Get(String(node.Name))
}

// entityToString renders the lightweight `<entity {...}>` form `print` uses
// for an entity argument, distinct from `inspect`'s deep recursive dump.
func (interp *Interpreter) entityToString(e *Entity) string {
	parts := make([]string, 0, e.Size())
	for _, entry := range e.Entries() {
		parts = append(parts, fmt.Sprintf("%s=%s", interp.stringify(entry.key), interp.stringify(entry.val)))
	}
	return "<entity {" + strings.Join(parts, ", ") + "}>"
}

// stringify renders v the way `print` displays it.
func (interp *Interpreter) stringify(v Value) string {
	switch v.Tag {
	case VNone:
		return "None"
	case VBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case VNumber:
		return v.AsNumber().String()
	case VString:
		return v.AsString()
	case VEntity:
		return interp.entityToString(v.AsEntity())
	case VCallable:
		return fmt.Sprintf("<native %s>", v.call.Name())
	default:
		return ""
	}
}
