package semantic

import "ccdsl/internal/ast"

// Analyzer runs the four ordered passes over a Contract described by the
// analyzer's responsibility: register declarations, register state, check
// each function locally while generating constraints, then solve every
// constraint collected across the whole contract.
type Analyzer struct {
	table       *SymbolTable
	findings    []*Finding
	constraints []Constraint
	contract    *ast.Contract
	curFn       *ast.Function
}

func NewAnalyzer() *Analyzer {
	a := &Analyzer{table: NewSymbolTable()}
	registerBuiltins(a.table)
	return a
}

// Analyze runs all four passes and returns every collected finding; an empty
// slice means the contract is well-typed.
func (a *Analyzer) Analyze(c *ast.Contract) []*Finding {
	a.contract = c
	a.passTypeDeclarations()
	a.passState()
	a.passFunctions()
	a.findings = append(a.findings, Solve(a.constraints)...)
	return a.findings
}

func (a *Analyzer) addFinding(kind FindingKind, pos ast.Position, msg string) {
	a.findings = append(a.findings, &Finding{Kind: kind, Pos: pos, Message: msg})
}

func (a *Analyzer) addUndefined(name string, pos ast.Position) {
	f := &Finding{Kind: KindUndefinedIdentifier, Pos: pos, Message: "undefined identifier `" + name + "`"}
	if s := findSimilar(name, a.table.AllNames()); s != "" {
		f.Suggestion = s
	}
	a.findings = append(a.findings, f)
}

// --- pass 1: type declarations ------------------------------------------

func (a *Analyzer) passTypeDeclarations() {
	for _, s := range a.contract.Structs {
		sym := &Symbol{Name: s.Name, Kind: SymStruct, Type: ast.StructT(s.Name), Pos: s.NodePos(), Struct: s}
		if !a.table.Define(sym) {
			a.addFinding(KindDuplicateDeclaration, s.NodePos(), "duplicate struct declaration `"+s.Name+"`")
		}
	}
	for _, e := range a.contract.Events {
		sym := &Symbol{Name: e.Name, Kind: SymEvent, Pos: e.NodePos(), Event: e}
		if !a.table.Define(sym) {
			a.addFinding(KindDuplicateDeclaration, e.NodePos(), "duplicate event declaration `"+e.Name+"`")
		}
	}
	for _, m := range a.contract.Modifiers {
		sym := &Symbol{Name: m.Name, Kind: SymModifier, Pos: m.NodePos()}
		if !a.table.Define(sym) {
			a.addFinding(KindDuplicateDeclaration, m.NodePos(), "duplicate modifier declaration `"+m.Name+"`")
		}
	}
	for _, fn := range a.contract.Functions {
		params := make([]*ast.Type, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Type
		}
		sym := &Symbol{Name: fn.Name, Kind: SymFunction, Pos: fn.NodePos(), Params: params, Return: fn.Return}
		if !a.table.Define(sym) {
			a.addFinding(KindDuplicateDeclaration, fn.NodePos(), "duplicate function declaration `"+fn.Name+"`")
		}
	}
}

// --- pass 2: state --------------------------------------------------------

func (a *Analyzer) passState() {
	for _, sv := range a.contract.State {
		sym := &Symbol{Name: sv.Name, Kind: SymStateVariable, Type: sv.Type, Mutable: sv.Mutable, Pos: sv.NodePos()}
		if !a.table.Define(sym) {
			a.addFinding(KindDuplicateDeclaration, sv.NodePos(), "duplicate state variable declaration `"+sv.Name+"`")
			continue
		}
		if sv.Initializer != nil {
			initType := a.inferExpr(sv.Initializer)
			a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: sv.Type, B: initType, Pos: sv.NodePos(), Context: "state variable initializer"})
		}
	}
}

// --- pass 3: functions -----------------------------------------------------

func (a *Analyzer) passFunctions() {
	for _, fn := range a.contract.Functions {
		a.analyzeFunction(fn)
	}
}

func (a *Analyzer) analyzeFunction(fn *ast.Function) {
	a.curFn = fn
	a.table.Push()
	for _, p := range fn.Params {
		sym := &Symbol{Name: p.Name, Kind: SymParameter, Type: p.Type, Mutable: p.Mutable, Pos: p.NodePos()}
		if !a.table.Define(sym) {
			a.addFinding(KindDuplicateDeclaration, p.NodePos(), "duplicate parameter `"+p.Name+"`")
		}
	}

	a.analyzeBlock(fn.Body)

	if fn.Return != nil && fn.Return.Kind != ast.TVoid {
		if !ReturnsOnAllPaths(fn.Body) {
			a.addFinding(KindMissingReturn, fn.NodePos(), "function `"+fn.Name+"` is missing a return on some path")
		}
	}

	a.table.Pop()
	a.curFn = nil
}

func (a *Analyzer) analyzeBlock(b *ast.Block) {
	a.table.Push()
	for _, s := range b.Stmts {
		a.analyzeStmt(s)
	}
	a.table.Pop()
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.LetStmt:
		valType := a.inferExpr(n.Value)
		bound := valType
		if n.Type != nil {
			a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: n.Type, B: valType, Pos: n.NodePos(), Context: "let binding `" + n.Name + "`"})
			bound = n.Type
		}
		sym := &Symbol{Name: n.Name, Kind: SymLocalVariable, Type: bound, Mutable: n.Mutable, Pos: n.NodePos()}
		if !a.table.Define(sym) {
			a.addFinding(KindDuplicateDeclaration, n.NodePos(), "duplicate local variable `"+n.Name+"`")
		}
	case *ast.AssignStmt:
		valType := a.inferExpr(n.Value)
		targetType, mutable, ok := a.lvalueInfo(n.Target)
		if ok {
			a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: targetType, B: valType, Pos: n.NodePos(), Context: "assignment"})
			if !mutable {
				a.addFinding(KindImmutableAssignment, n.NodePos(), "cannot assign to immutable binding")
			}
		}
	case *ast.IfStmt:
		condType := a.inferExpr(n.Cond)
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: ast.BoolT(), B: condType, Pos: n.NodePos(), Context: "if condition"})
		a.analyzeBlock(n.Then)
		if n.Else != nil {
			a.analyzeStmt(n.Else)
		}
	case *ast.Block:
		a.analyzeBlock(n)
	case *ast.WhileStmt:
		condType := a.inferExpr(n.Cond)
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: ast.BoolT(), B: condType, Pos: n.NodePos(), Context: "while condition"})
		a.analyzeBlock(n.Body)
	case *ast.ForStmt:
		a.table.Push()
		if n.Init != nil {
			a.analyzeStmt(n.Init)
		}
		if n.Cond != nil {
			condType := a.inferExpr(n.Cond)
			a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: ast.BoolT(), B: condType, Pos: n.NodePos(), Context: "for condition"})
		}
		if n.Post != nil {
			a.analyzeStmt(n.Post)
		}
		a.analyzeBlock(n.Body)
		a.table.Pop()
	case *ast.ForEachStmt:
		iterType := a.inferExpr(n.Iter)
		elemType := ast.U64()
		if iterType.Kind == ast.TVec || iterType.Kind == ast.TArray {
			elemType = iterType.Elem
		}
		a.table.Push()
		a.table.Define(&Symbol{Name: n.VarName, Kind: SymLocalVariable, Type: elemType, Mutable: false, Pos: n.NodePos()})
		for _, st := range n.Body.Stmts {
			a.analyzeStmt(st)
		}
		a.table.Pop()
	case *ast.RequireStmt:
		condType := a.inferExpr(n.Cond)
		a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: ast.BoolT(), B: condType, Pos: n.NodePos(), Context: "require condition"})
		if n.Code != nil {
			a.inferExpr(n.Code)
		}
	case *ast.AssertStmt:
		for _, arg := range n.Args {
			a.inferExpr(arg)
		}
	case *ast.EmitStmt:
		sym, ok := a.table.Lookup(n.Event)
		if !ok || sym.Kind != SymEvent {
			a.addFinding(KindUnknownEvent, n.NodePos(), "unknown event `"+n.Event+"`")
		}
		for _, arg := range n.Args {
			a.inferExpr(arg)
		}
	case *ast.ReturnStmt:
		if n.Value == nil {
			if a.curFn != nil && a.curFn.Return != nil && a.curFn.Return.Kind != ast.TVoid {
				a.addFinding(KindReturnInVoid, n.NodePos(), "missing return value in function `"+a.curFn.Name+"`")
			}
			return
		}
		valType := a.inferExpr(n.Value)
		if a.curFn != nil {
			if a.curFn.Return == nil || a.curFn.Return.Kind == ast.TVoid {
				a.addFinding(KindReturnInVoid, n.NodePos(), "return with a value in a void function")
			} else {
				a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: a.curFn.Return, B: valType, Pos: n.NodePos(), Context: "return value"})
			}
		}
	case *ast.ExprStmt:
		a.inferExpr(n.Expr)
	}
}

// lvalueInfo resolves the root symbol of an lvalue chain and returns the
// chain's final type along with whether its root is mutable.
func (a *Analyzer) lvalueInfo(lv ast.LValue) (*ast.Type, bool, bool) {
	switch n := lv.(type) {
	case *ast.IdentLValue:
		sym, ok := a.table.Lookup(n.Name)
		if !ok {
			a.addUndefined(n.Name, n.NodePos())
			return unknown(), false, false
		}
		sym.Used = true
		return sym.Type, sym.Mutable, true
	case *ast.IndexLValue:
		targetType, mutable, ok := a.lvalueInfo(n.Target)
		idxType := a.inferExpr(n.Index)
		if !ok {
			return unknown(), mutable, false
		}
		switch targetType.Kind {
		case ast.TMap:
			a.constraints = append(a.constraints, Constraint{Kind: CEqual, A: targetType.Key, B: idxType, Pos: n.NodePos(), Context: "map index"})
			return targetType.Elem, mutable, true
		case ast.TVec, ast.TArray:
			a.constraints = append(a.constraints, Constraint{Kind: CSubtype, A: idxType, B: ast.U64(), Pos: n.NodePos(), Context: "index"})
			return targetType.Elem, mutable, true
		default:
			a.addFinding(KindIndexTypeError, n.NodePos(), "cannot index into type "+targetType.String())
			return unknown(), mutable, false
		}
	case *ast.FieldLValue:
		targetType, mutable, ok := a.lvalueInfo(n.Target)
		if !ok {
			return unknown(), mutable, false
		}
		if targetType.Kind != ast.TStruct {
			a.addFinding(KindFieldOnNonStruct, n.NodePos(), "field access on non-struct type "+targetType.String())
			return unknown(), mutable, false
		}
		ft, found := a.fieldType(targetType.Name, n.Field)
		if !found {
			a.addFinding(KindUnknownField, n.NodePos(), "unknown field `"+n.Field+"` on struct `"+targetType.Name+"`")
			return unknown(), mutable, false
		}
		return ft, mutable, true
	}
	return unknown(), false, false
}

func (a *Analyzer) fieldType(structName, field string) (*ast.Type, bool) {
	sym, ok := a.table.Lookup(structName)
	if !ok || sym.Struct == nil {
		return nil, false
	}
	for _, f := range sym.Struct.Fields {
		if f.Name == field {
			return f.Type, true
		}
	}
	return nil, false
}

func unknown() *ast.Type { return &ast.Type{Kind: ast.TUnknown} }
