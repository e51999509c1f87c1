package engine_test

// Conformance fixtures: one hand-built AST per scenario, run end to end
// through engine.Check and fanned out via testkit.RunScenarios the same way
// the teacher's own fixture suite drives its example programs. No parser
// exists in this tree, so every scenario builds its tree directly against
// syntax.Builder the way internal/lowerer's and internal/narrow's own test
// suites already do.

import (
	"context"
	"fmt"
	"testing"

	"github.com/mohsen1/tsz/internal/config"
	"github.com/mohsen1/tsz/internal/defs"
	"github.com/mohsen1/tsz/internal/diag"
	"github.com/mohsen1/tsz/internal/engine"
	"github.com/mohsen1/tsz/internal/source"
	"github.com/mohsen1/tsz/internal/syntax"
	"github.com/mohsen1/tsz/internal/testkit"
	"github.com/mohsen1/tsz/internal/types"
)

// harness bundles the shared builder state one scenario assembles its tree
// against, plus the engine.Context that checks it.
type harness struct {
	strings *source.Interner
	builder *syntax.Builder
	files   *source.FileSet
	ctx     *engine.Context
}

func newHarness(opts config.CheckOptions) *harness {
	strings := source.NewInterner()
	builder := syntax.NewBuilder(syntax.Hints{}, strings)
	files := source.NewFileSet()
	return &harness{
		strings: strings,
		builder: builder,
		files:   files,
		ctx:     engine.New(opts, builder, files),
	}
}

// run registers text under name, checks the given top-level statements as
// one file (isModule controls TS1252's strict-mode threading), and returns
// the check Output. Callers pick monotonically increasing span offsets
// themselves so diag.Bag's span-ordered sort reflects intended source order.
func (h *harness) run(ctx context.Context, name string, text string, body []syntax.StmtID, isModule bool) (*engine.Output, error) {
	fileSpan := source.Span{Start: 0, End: uint32(len(text))}
	fileID := h.files.Add(name, []byte(text))
	synFile := h.builder.Files.New(fileSpan, body, isModule)
	return engine.Check(ctx, h.ctx, []source.FileID{fileID}, []syntax.FileID{synFile})
}

func sp(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func wantCodes(diags []*diag.Diagnostic, want ...diag.Code) error {
	if len(diags) != len(want) {
		got := make([]diag.Code, len(diags))
		for i, d := range diags {
			got[i] = d.Code
		}
		return fmt.Errorf("got %v diagnostics, want %v", got, want)
	}
	for i, w := range want {
		if diags[i].Code != w {
			return fmt.Errorf("diagnostic[%d] = %s, want %s", i, diags[i].Code, w)
		}
	}
	return nil
}

// scenarioDiscriminatedUnionLiteral: type Obj = {flag:false}|{flag:true};
// const o: Obj = {flag: false}; — the object literal's "flag" value must
// keep its literal-false type rather than widen to boolean, the mechanism
// that lets a later narrow on o.flag pick the right union arm.
func scenarioDiscriminatedUnionLiteral(ctx context.Context) error {
	h := newHarness(config.Default())
	b := h.builder
	flag := h.strings.Intern("flag")
	obj := h.strings.Intern("Obj")
	oName := h.strings.Intern("o")

	falseArm := b.Types.Object(sp(0, 1), []syntax.ObjectTypeMember{{Name: flag, Type: b.Types.BooleanLiteral(sp(0, 1), false)}})
	trueArm := b.Types.Object(sp(0, 1), []syntax.ObjectTypeMember{{Name: flag, Type: b.Types.BooleanLiteral(sp(0, 1), true)}})
	union := b.Types.Union(sp(0, 1), []syntax.TypeExprID{falseArm, trueArm})
	aliasDecl := b.Stmts.TypeAliasDecl(sp(0, 40), obj, union)

	initExpr := b.Exprs.ObjectLiteral(sp(50, 64), []syntax.PropertyInit{{Name: flag, Value: b.Exprs.BooleanLiteral(sp(60, 65), false)}})
	varDecl := b.Stmts.VarDecl(sp(45, 65), syntax.VarConst, oName, b.Types.Reference(sp(48, 51), []source.StringID{obj}, nil), initExpr)

	out, err := h.run(ctx, "scenario1.ts", "type Obj = {flag: false} | {flag: true}; const o: Obj = {flag: false};", []syntax.StmtID{aliasDecl, varDecl}, false)
	if err != nil {
		return err
	}
	if err := wantCodes(out.Diagnostics); err != nil {
		return err
	}
	if err := testkit.CheckTypeMapInvariants(h.ctx.Interner, out.TypeMap); err != nil {
		return err
	}
	shape, ok := h.ctx.Interner.ObjectShapeInfo(out.TypeMap[initExpr])
	if !ok {
		return fmt.Errorf("o's initializer did not record an object shape")
	}
	prop, ok := h.ctx.Interner.Property(out.TypeMap[initExpr], flag)
	if !ok {
		return fmt.Errorf("shape has no 'flag' property: %+v", shape)
	}
	if prop.Type != h.ctx.Interner.LiteralBoolean(false) {
		return fmt.Errorf("'flag' widened to %s, want the literal false type", types.Label(h.ctx.Interner, prop.Type))
	}
	return nil
}

// scenarioReadonlyArrayWrite: const xs: readonly number[] = [1,2]; xs[0] = 3;
// must raise TS2540 at the write.
func scenarioReadonlyArrayWrite(ctx context.Context) error {
	h := newHarness(config.Default())
	b := h.builder
	number := h.strings.Intern("number")
	xs := h.strings.Intern("xs")

	elemRef := b.Types.Reference(sp(0, 1), []source.StringID{number}, nil)
	typeAnn := b.Types.ReadonlyArray(sp(0, 1), elemRef)
	init := b.Exprs.ArrayLiteral(sp(0, 1), []syntax.ExprID{b.Exprs.NumberLiteral(sp(0, 1), 1), b.Exprs.NumberLiteral(sp(0, 1), 2)})
	varDecl := b.Stmts.VarDecl(sp(0, 40), syntax.VarConst, xs, typeAnn, init)

	assign := b.Exprs.Assign(sp(45, 55),
		b.Exprs.ElementAccess(sp(45, 50), b.Exprs.Ident(sp(45, 47), xs), b.Exprs.NumberLiteral(sp(48, 49), 0)),
		b.Exprs.NumberLiteral(sp(53, 54), 3))
	assignStmt := b.Stmts.ExprStmt(sp(45, 55), assign)

	out, err := h.run(ctx, "scenario2.ts", "const xs: readonly number[] = [1,2]; xs[0] = 3;", []syntax.StmtID{varDecl, assignStmt}, false)
	if err != nil {
		return err
	}
	if err := wantCodes(out.Diagnostics, diag.TS2540); err != nil {
		return err
	}
	return testkit.CheckTypeMapInvariants(h.ctx.Interner, out.TypeMap)
}

// scenarioReadonlyInterfaceProperty: interface C { readonly name: string }
// let c: C = {name:"a"}; c.name = "b"; c["name"] = "b"; — both writes raise
// TS2540, whether reached via property or element access.
func scenarioReadonlyInterfaceProperty(ctx context.Context) error {
	h := newHarness(config.Default())
	b := h.builder
	name := h.strings.Intern("name")
	cIface := h.strings.Intern("C")
	cVar := h.strings.Intern("c")
	str := h.strings.Intern("string")

	member := syntax.ObjectTypeMember{Name: name, Type: b.Types.Reference(sp(0, 1), []source.StringID{str}, nil), Readonly: true}
	ifaceDecl := b.Stmts.InterfaceDecl(sp(0, 30), cIface, nil, nil, []syntax.ObjectTypeMember{member})

	init := b.Exprs.ObjectLiteral(sp(35, 48), []syntax.PropertyInit{{Name: name, Value: b.Exprs.StringLiteral(sp(40, 43), h.strings.Intern("a"))}})
	varDecl := b.Stmts.VarDecl(sp(33, 48), syntax.VarLet, cVar, b.Types.Reference(sp(0, 1), []source.StringID{cIface}, nil), init)

	propAssign := b.Exprs.Assign(sp(50, 64),
		b.Exprs.PropertyAccess(sp(50, 56), b.Exprs.Ident(sp(50, 51), cVar), name),
		b.Exprs.StringLiteral(sp(60, 63), h.strings.Intern("b")))
	propStmt := b.Stmts.ExprStmt(sp(50, 64), propAssign)

	elemAssign := b.Exprs.Assign(sp(66, 84),
		b.Exprs.ElementAccess(sp(66, 78), b.Exprs.Ident(sp(66, 67), cVar), b.Exprs.StringLiteral(sp(69, 73), name)),
		b.Exprs.StringLiteral(sp(82, 83), h.strings.Intern("b")))
	elemStmt := b.Stmts.ExprStmt(sp(66, 84), elemAssign)

	out, err := h.run(ctx, "scenario3.ts",
		`interface C { readonly name: string } let c: C = {name:"a"}; c.name = "b"; c["name"] = "b";`,
		[]syntax.StmtID{ifaceDecl, varDecl, propStmt, elemStmt}, false)
	if err != nil {
		return err
	}
	if err := wantCodes(out.Diagnostics, diag.TS2540, diag.TS2540); err != nil {
		return err
	}
	return testkit.CheckTypeMapInvariants(h.ctx.Interner, out.TypeMap)
}

// scenarioBlockScopedFunctionInModule: if(true){function foo(){} foo();}
// foo(); in a module-mode file must raise TS1252 at the nested declaration
// and TS2304 at the trailing top-level call — module bodies are implicitly
// strict (spec.md §4.7) even though this harness's CheckOptions leaves
// Strict at its permissive default, so this doubles as the regression case
// for that threading.
func scenarioBlockScopedFunctionInModule(ctx context.Context) error {
	h := newHarness(config.Default())
	b := h.builder
	foo := h.strings.Intern("foo")

	innerCall := b.Stmts.ExprStmt(sp(20, 25), b.Exprs.Call(sp(20, 25), b.Exprs.Ident(sp(20, 23), foo), nil))
	fnDecl := b.Stmts.FunctionDecl(sp(10, 19), foo, nil, nil, syntax.NoTypeExprID, nil)
	block := b.Stmts.Block(sp(9, 27), []syntax.StmtID{fnDecl, innerCall})
	ifStmt := b.Stmts.If(sp(0, 27), b.Exprs.BooleanLiteral(sp(3, 7), true), block, syntax.NoStmtID)

	outerCall := b.Stmts.ExprStmt(sp(29, 34), b.Exprs.Call(sp(29, 34), b.Exprs.Ident(sp(29, 32), foo), nil))

	out, err := h.run(ctx, "scenario4.ts", "if(true){function foo(){} foo();} foo();", []syntax.StmtID{ifStmt, outerCall}, true)
	if err != nil {
		return err
	}
	if err := wantCodes(out.Diagnostics, diag.TS1252, diag.TS2304); err != nil {
		return err
	}
	return testkit.CheckTypeMapInvariants(h.ctx.Interner, out.TypeMap)
}

// scenarioGenericIndexAccessInference:
// function f<T,K extends keyof T>(v: T[K]): T[K]{return v}
// const o={value:42}; const r=f(o); — r must infer to number, exercising
// the solver's IndexAccess unification case end to end.
func scenarioGenericIndexAccessInference(ctx context.Context) error {
	h := newHarness(config.Default())
	b := h.builder
	fName := h.strings.Intern("f")
	tName := h.strings.Intern("T")
	kName := h.strings.Intern("K")
	vName := h.strings.Intern("v")
	oName := h.strings.Intern("o")
	rName := h.strings.Intern("r")
	valueName := h.strings.Intern("value")

	tRef := b.Types.Reference(sp(0, 1), []source.StringID{tName}, nil)
	kRef := b.Types.Reference(sp(0, 1), []source.StringID{kName}, nil)
	typeParams := []syntax.TypeParam{
		{Name: tName},
		{Name: kName, Constraint: b.Types.KeyOf(sp(0, 1), tRef)},
	}
	vType := b.Types.IndexedAccess(sp(0, 1), tRef, kRef)
	retType := b.Types.IndexedAccess(sp(0, 1), tRef, kRef)
	body := []syntax.StmtID{b.Stmts.Return(sp(55, 64), b.Exprs.Ident(sp(62, 63), vName))}
	fDecl := b.Stmts.FunctionDecl(sp(0, 65), fName, typeParams,
		[]syntax.Param{{Name: vName, Type: vType}}, retType, body)

	oInit := b.Exprs.ObjectLiteral(sp(75, 90), []syntax.PropertyInit{{Name: valueName, Value: b.Exprs.NumberLiteral(sp(82, 84), 42)}})
	oDecl := b.Stmts.VarDecl(sp(67, 90), syntax.VarConst, oName, syntax.NoTypeExprID, oInit)

	rInit := b.Exprs.Call(sp(100, 104), b.Exprs.Ident(sp(100, 101), fName), []syntax.ExprID{b.Exprs.Ident(sp(102, 103), oName)})
	rDecl := b.Stmts.VarDecl(sp(92, 104), syntax.VarConst, rName, syntax.NoTypeExprID, rInit)

	out, err := h.run(ctx, "scenario5.ts",
		"function f<T,K extends keyof T>(v: T[K]): T[K]{return v} const o={value:42}; const r=f(o);",
		[]syntax.StmtID{fDecl, oDecl, rDecl}, false)
	if err != nil {
		return err
	}
	if err := wantCodes(out.Diagnostics); err != nil {
		return err
	}
	if err := testkit.CheckTypeMapInvariants(h.ctx.Interner, out.TypeMap); err != nil {
		return err
	}
	fileID, ok := h.files.GetLatest("scenario5.ts")
	if !ok {
		return fmt.Errorf("scenario5.ts was not registered in the file set")
	}
	fileScope := h.ctx.Table.FileRoot(fileID)
	def, ok := h.ctx.Table.Resolve(fileScope, defs.NamespaceValue, rName)
	if !ok {
		return fmt.Errorf("r was not declared")
	}
	rDef := h.ctx.Table.Defs.Get(def)
	if rDef == nil {
		return fmt.Errorf("r has no def record")
	}
	if rDef.Type != h.ctx.Interner.Builtins().Number {
		return fmt.Errorf("r inferred as %s, want number", types.Label(h.ctx.Interner, rDef.Type))
	}
	return nil
}

// scenarioCrossNamespaceQualifiedName:
// namespace JSX { export interface Element {} }
// const e: JSX.Element = {} as any; — e's annotation must resolve through
// the namespace's own inner scope via a qualified reference.
func scenarioCrossNamespaceQualifiedName(ctx context.Context) error {
	h := newHarness(config.Default())
	b := h.builder
	jsx := h.strings.Intern("JSX")
	element := h.strings.Intern("Element")
	eName := h.strings.Intern("e")
	anyName := h.strings.Intern("any")

	ifaceDecl := b.Stmts.InterfaceDecl(sp(15, 40), element, nil, nil, nil)
	nsDecl := b.Stmts.NamespaceDecl(sp(0, 42), jsx, []syntax.StmtID{ifaceDecl})

	eInit := b.Exprs.As(sp(60, 70), b.Exprs.ObjectLiteral(sp(60, 62), nil), b.Types.Reference(sp(66, 69), []source.StringID{anyName}, nil))
	eDecl := b.Stmts.VarDecl(sp(44, 70), syntax.VarConst, eName,
		b.Types.Reference(sp(47, 56), []source.StringID{jsx, element}, nil), eInit)

	out, err := h.run(ctx, "scenario6.ts",
		`namespace JSX { export interface Element {} } const e: JSX.Element = {} as any;`,
		[]syntax.StmtID{nsDecl, eDecl}, false)
	if err != nil {
		return err
	}
	if err := wantCodes(out.Diagnostics); err != nil {
		return err
	}
	return testkit.CheckTypeMapInvariants(h.ctx.Interner, out.TypeMap)
}

func TestConformanceScenarios(t *testing.T) {
	scenarios := []testkit.Scenario{
		{Name: "discriminated-union-literal-preservation", Run: scenarioDiscriminatedUnionLiteral},
		{Name: "readonly-array-element-write", Run: scenarioReadonlyArrayWrite},
		{Name: "readonly-interface-property-write", Run: scenarioReadonlyInterfaceProperty},
		{Name: "block-scoped-function-in-module", Run: scenarioBlockScopedFunctionInModule},
		{Name: "generic-inference-through-index-access", Run: scenarioGenericIndexAccessInference},
		{Name: "cross-namespace-qualified-name", Run: scenarioCrossNamespaceQualifiedName},
	}
	results := testkit.RunScenarios(context.Background(), 4, scenarios)
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Name, r.Err)
		}
	}
}
