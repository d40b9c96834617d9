// builtins.go
//
// Global built-in bindings: `true`, `false`, `print`, `inspect`, and `len`,
// each registered as a *NativeFunction value (function.go) on the global
// Env.
package nano

import (
	"fmt"
	"strings"
)

func registerBuiltins(interp *Interpreter) {
	g := interp.Globals
	g.Define("true", Bool(true))
	g.Define("false", Bool(false))
	g.Define("print", CallableVal(&NativeFunction{FnName: "print", ArityN: -1, Fn: builtinPrint}))
	g.Define("inspect", CallableVal(&NativeFunction{FnName: "inspect", ArityN: 1, Fn: builtinInspect}))
	g.Define("len", CallableVal(&NativeFunction{FnName: "len", ArityN: 1, Fn: builtinLen}))
}

func builtinPrint(interp *Interpreter, args []Value) Value {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = interp.stringify(a)
	}
	fmt.Fprintln(interp.Stdout, strings.Join(parts, " "))
	return None
}

func builtinInspect(interp *Interpreter, args []Value) Value {
	arg := args[0]
	if arg.IsEntity() {
		info := interp.inspectEntityRecursive(arg.AsEntity(), 0)
		fmt.Fprintln(interp.Stdout, info)
		return String(info)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Type: %s\n", typeName(arg))
	fmt.Fprint(&b, interp.stringify(arg))
	fmt.Fprintln(interp.Stdout, b.String())
	return String(b.String())
}

func builtinLen(interp *Interpreter, args []Value) Value {
	arg := args[0]
	if !arg.IsEntity() {
		fmt.Fprintln(interp.Rep.Out, "Error: len() expects a table/array as argument.")
		return Int(0)
	}
	return Int(int64(arg.AsEntity().Size()))
}

func typeName(v Value) string {
	switch v.Tag {
	case VNone:
		return "None"
	case VBool:
		return "Bool"
	case VNumber:
		return "Number"
	case VString:
		return "String"
	case VEntity:
		return "Entity"
	case VCallable:
		return "Callable"
	default:
		return "Unknown"
	}
}

// inspectEntityRecursive implements `inspect`'s recursive dump: a label,
// function details when the entity backs a Function, all local entries,
// then the metaentity chain at increasing indent.
func (interp *Interpreter) inspectEntityRecursive(entity *Entity, depth int) string {
	indent := strings.Repeat("  ", depth)
	var b strings.Builder

	if entity.fn != nil {
		fmt.Fprintf(&b, "%s<FunctionValue>\n", indent)
		if entity.fn.FnName != "" {
			fmt.Fprintf(&b, "%s  Name: %s\n", indent, entity.fn.FnName)
		} else {
			fmt.Fprintf(&b, "%s  Anonymous Function\n", indent)
		}
		fmt.Fprintf(&b, "%s  Params: %s\n", indent, strings.Join(entity.fn.Params, " "))
		fmt.Fprintf(&b, "%s  Body: %d statement(s)\n", indent, len(entity.fn.Body.Stmts))
	} else {
		fmt.Fprintf(&b, "%s<Entity>\n", indent)
	}

	fmt.Fprintf(&b, "%sEntries:\n", indent)
	for _, entry := range entity.Entries() {
		fmt.Fprintf(&b, "%s  %s : %s\n", indent, interp.stringify(entry.key), interp.stringify(entry.val))
	}

	if entity.Metaentity() != nil {
		fmt.Fprintf(&b, "%sParent =>\n", indent)
		b.WriteString(interp.inspectEntityRecursive(entity.Metaentity(), depth+1))
	}

	return b.String()
}
