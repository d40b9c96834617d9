// builtins_test.go
package nano

import (
	"bytes"
	"strings"
	"testing"
)

func newTestInterpreter(t *testing.T) (*Interpreter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errs bytes.Buffer
	rep := &Reporter{Out: &errs}
	interp := NewInterpreter(rep, &out)
	return interp, &out, &errs
}

func Test_Builtins_Print_JoinsArgsWithSpace(t *testing.T) {
	interp, out, _ := newTestInterpreter(t)
	printFn := interp.Globals.Get("print", 1, interp.Rep).AsCallable()
	printFn.Call(interp, []Value{Int(1), String("two"), Bool(true)})
	if got := strings.TrimSpace(out.String()); got != "1 two true" {
		t.Fatalf("got %q, want \"1 two true\"", got)
	}
}

func Test_Builtins_Print_IsVariadic(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	printFn := interp.Globals.Get("print", 1, interp.Rep).AsCallable()
	if printFn.Arity() >= 0 {
		t.Fatalf("expected print to report a negative (variadic) arity")
	}
}

func Test_Builtins_Len_OnArray(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	lenFn := interp.Globals.Get("len", 1, interp.Rep).AsCallable()
	arr := EntityVal(NewArray([]Value{Int(1), Int(2), Int(3)}))
	got := lenFn.Call(interp, []Value{arr})
	if !Equal(got, Int(3)) {
		t.Fatalf("got %#v, want Int(3)", got)
	}
}

func Test_Builtins_Len_OnNonEntity_ReportsErrorAndYieldsZero(t *testing.T) {
	interp, _, errs := newTestInterpreter(t)
	lenFn := interp.Globals.Get("len", 1, interp.Rep).AsCallable()
	got := lenFn.Call(interp, []Value{Int(42)})
	if !Equal(got, Int(0)) {
		t.Fatalf("got %#v, want Int(0)", got)
	}
	if errs.Len() == 0 {
		t.Fatalf("expected an error to be written for a non-entity argument")
	}
}

func Test_Builtins_Inspect_NonEntity_PrintsTypeAndValue(t *testing.T) {
	interp, out, _ := newTestInterpreter(t)
	inspectFn := interp.Globals.Get("inspect", 1, interp.Rep).AsCallable()
	result := inspectFn.Call(interp, []Value{Int(7)})
	if !result.IsString() {
		t.Fatalf("expected inspect to return a String value")
	}
	if !strings.Contains(out.String(), "Type: Number") {
		t.Fatalf("expected printed output to contain the type label, got %q", out.String())
	}
}

func Test_Builtins_Inspect_Entity_ShowsEntriesAndRecursesIntoParent(t *testing.T) {
	interp, out, _ := newTestInterpreter(t)
	parent := NewEntity()
	parent.Set(String("p"), Int(1))
	child := NewEntity()
	child.Set(String("c"), Int(2))
	child.SetMetaentity(parent)

	inspectFn := interp.Globals.Get("inspect", 1, interp.Rep).AsCallable()
	inspectFn.Call(interp, []Value{EntityVal(child)})

	rendered := out.String()
	if !strings.Contains(rendered, "c : 2") {
		t.Fatalf("expected child entry in output, got %q", rendered)
	}
	if !strings.Contains(rendered, "Parent =>") {
		t.Fatalf("expected a parent marker in output, got %q", rendered)
	}
	if !strings.Contains(rendered, "p : 1") {
		t.Fatalf("expected parent entry in recursive output, got %q", rendered)
	}
}

func Test_Builtins_CallArityMismatch_ReportsDiagnostic(t *testing.T) {
	_, _, rep := runNanoForBuiltins(t, `
def one(a) { return a; }
one(1, 2, 3);
`)
	if !rep.HadError {
		t.Fatalf("expected an arity-mismatch diagnostic")
	}
}

func runNanoForBuiltins(t *testing.T, src string) (string, string, *Reporter) {
	t.Helper()
	var out, errs bytes.Buffer
	rep := &Reporter{Out: &errs}
	RunSource(src, &out, rep)
	return out.String(), errs.String(), rep
}
