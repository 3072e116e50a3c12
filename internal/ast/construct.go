package ast

// This file holds one constructor per node variant, the "construction
// operations to build every variant" the AST's public contract requires.
// Parsers and the optimizer build nodes through these rather than poking at
// unexported fields directly.

func mkbase(pos, end Position) base { return base{Pos: pos, EndPos: end} }

func NewProgram(pos, end Position) *Program { return &Program{base: mkbase(pos, end)} }

func NewImport(pos, end Position, path []string) *Import {
	return &Import{base: mkbase(pos, end), Path: path}
}

func NewTypeAlias(pos, end Position, name string, t *Type) *TypeAlias {
	return &TypeAlias{base: mkbase(pos, end), Name: name, Type: t}
}

func NewContract(pos, end Position, name Ident) *Contract {
	return &Contract{base: mkbase(pos, end), Name: name}
}

func NewStateVariable(pos, end Position, name string, t *Type, vis Visibility, mutable bool, init Expr) *StateVariable {
	return &StateVariable{base: mkbase(pos, end), Name: name, Type: t, Visibility: vis, Mutable: mutable, Initializer: init}
}

func NewStructDef(pos, end Position, name string, fields []*StructField) *StructDef {
	return &StructDef{base: mkbase(pos, end), Name: name, Fields: fields}
}

func NewStructField(pos, end Position, name string, t *Type) *StructField {
	return &StructField{base: mkbase(pos, end), Name: name, Type: t}
}

func NewEventDef(pos, end Position, name string, params []*EventParam) *EventDef {
	return &EventDef{base: mkbase(pos, end), Name: name, Params: params}
}

func NewEventParam(pos, end Position, name string, t *Type, indexed bool) *EventParam {
	return &EventParam{base: mkbase(pos, end), Name: name, Type: t, Indexed: indexed}
}

func NewModifier(pos, end Position, name string, params []*Parameter, body *Block) *Modifier {
	return &Modifier{base: mkbase(pos, end), Name: name, Params: params, Body: body}
}

func NewFunction(pos, end Position, name string, vis Visibility, params []*Parameter, ret *Type, mods []string, payable, view bool, body *Block) *Function {
	return &Function{base: mkbase(pos, end), Name: name, Visibility: vis, Params: params, Return: ret, Modifiers: mods, IsPayable: payable, IsView: view, Body: body}
}

func NewParameter(pos, end Position, name string, t *Type) *Parameter {
	return &Parameter{base: mkbase(pos, end), Name: name, Type: t}
}

func NewMutParameter(pos, end Position, name string, t *Type, mutable bool) *Parameter {
	return &Parameter{base: mkbase(pos, end), Name: name, Type: t, Mutable: mutable}
}

func NewBlock(pos, end Position, stmts []Stmt) *Block {
	return &Block{base: mkbase(pos, end), Stmts: stmts}
}

func NewIdentLValue(pos, end Position, name string) *IdentLValue {
	return &IdentLValue{base: mkbase(pos, end), Name: name}
}

func NewIndexLValue(pos, end Position, target LValue, index Expr) *IndexLValue {
	return &IndexLValue{base: mkbase(pos, end), Target: target, Index: index}
}

func NewFieldLValue(pos, end Position, target LValue, field string) *FieldLValue {
	return &FieldLValue{base: mkbase(pos, end), Target: target, Field: field}
}

func NewLetStmt(pos, end Position, name string, t *Type, mutable bool, value Expr) *LetStmt {
	return &LetStmt{base: mkbase(pos, end), Name: name, Type: t, Mutable: mutable, Value: value}
}

func NewAssignStmt(pos, end Position, target LValue, value Expr) *AssignStmt {
	return &AssignStmt{base: mkbase(pos, end), Target: target, Value: value}
}

func NewIfStmt(pos, end Position, cond Expr, then *Block, els Stmt) *IfStmt {
	return &IfStmt{base: mkbase(pos, end), Cond: cond, Then: then, Else: els}
}

func NewWhileStmt(pos, end Position, cond Expr, body *Block) *WhileStmt {
	return &WhileStmt{base: mkbase(pos, end), Cond: cond, Body: body}
}

func NewForStmt(pos, end Position, init Stmt, cond Expr, post Stmt, body *Block) *ForStmt {
	return &ForStmt{base: mkbase(pos, end), Init: init, Cond: cond, Post: post, Body: body}
}

func NewForEachStmt(pos, end Position, varName string, iter Expr, body *Block) *ForEachStmt {
	return &ForEachStmt{base: mkbase(pos, end), VarName: varName, Iter: iter, Body: body}
}

func NewRequireStmt(pos, end Position, cond Expr, code Expr) *RequireStmt {
	return &RequireStmt{base: mkbase(pos, end), Cond: cond, Code: code}
}

func NewAssertStmt(pos, end Position, args []Expr) *AssertStmt {
	return &AssertStmt{base: mkbase(pos, end), Args: args}
}

func NewEmitStmt(pos, end Position, event string, args []Expr) *EmitStmt {
	return &EmitStmt{base: mkbase(pos, end), Event: event, Args: args}
}

func NewReturnStmt(pos, end Position, value Expr) *ReturnStmt {
	return &ReturnStmt{base: mkbase(pos, end), Value: value}
}

func NewBreakStmt(pos, end Position) *BreakStmt       { return &BreakStmt{base: mkbase(pos, end)} }
func NewContinueStmt(pos, end Position) *ContinueStmt { return &ContinueStmt{base: mkbase(pos, end)} }

func NewExprStmt(pos, end Position, e Expr) *ExprStmt {
	return &ExprStmt{base: mkbase(pos, end), Expr: e}
}

func NewIntLiteral(pos, end Position, value uint64) *IntLiteral {
	return &IntLiteral{base: mkbase(pos, end), Value: value}
}

func NewBoolLiteral(pos, end Position, value bool) *BoolLiteral {
	return &BoolLiteral{base: mkbase(pos, end), Value: value}
}

func NewStringLiteral(pos, end Position, value string) *StringLiteral {
	return &StringLiteral{base: mkbase(pos, end), Value: value}
}

func NewAddressLiteral(pos, end Position, value string) *AddressLiteral {
	return &AddressLiteral{base: mkbase(pos, end), Value: value}
}

func NewIdentExpr(pos, end Position, name string) *IdentExpr {
	return &IdentExpr{base: mkbase(pos, end), Name: name}
}

func NewBinaryExpr(pos, end Position, op BinaryOp, l, r Expr) *BinaryExpr {
	return &BinaryExpr{base: mkbase(pos, end), Op: op, Left: l, Right: r}
}

func NewUnaryExpr(pos, end Position, op UnaryOp, operand Expr) *UnaryExpr {
	return &UnaryExpr{base: mkbase(pos, end), Op: op, Operand: operand}
}

func NewTernaryExpr(pos, end Position, cond, then, els Expr) *TernaryExpr {
	return &TernaryExpr{base: mkbase(pos, end), Cond: cond, Then: then, Else: els}
}

func NewCallExpr(pos, end Position, callee string, args []Expr) *CallExpr {
	return &CallExpr{base: mkbase(pos, end), Callee: callee, Args: args}
}

func NewMethodCallExpr(pos, end Position, receiver Expr, method string, args []Expr) *MethodCallExpr {
	return &MethodCallExpr{base: mkbase(pos, end), Receiver: receiver, Method: method, Args: args}
}

func NewIndexExpr(pos, end Position, target, index Expr) *IndexExpr {
	return &IndexExpr{base: mkbase(pos, end), Target: target, Index: index}
}

func NewFieldExpr(pos, end Position, target Expr, field string) *FieldExpr {
	return &FieldExpr{base: mkbase(pos, end), Target: target, Field: field}
}

func NewArrayLiteral(pos, end Position, elements []Expr) *ArrayLiteral {
	return &ArrayLiteral{base: mkbase(pos, end), Elements: elements}
}

func NewTupleLiteral(pos, end Position, elements []Expr) *TupleLiteral {
	return &TupleLiteral{base: mkbase(pos, end), Elements: elements}
}

func NewStructLiteralField(pos, end Position, name string, value Expr) *StructLiteralField {
	return &StructLiteralField{base: mkbase(pos, end), Name: name, Value: value}
}

func NewStructLiteralExpr(pos, end Position, structName string, fields []*StructLiteralField) *StructLiteralExpr {
	return &StructLiteralExpr{base: mkbase(pos, end), StructName: structName, Fields: fields}
}

func NewLambdaExpr(pos, end Position, params []*Parameter, body Expr) *LambdaExpr {
	return &LambdaExpr{base: mkbase(pos, end), Params: params, Body: body}
}

func NewEnvAccessor(pos, end Position, kind EnvAccessorKind) *EnvAccessor {
	return &EnvAccessor{base: mkbase(pos, end), Kind: kind}
}

func NewIdent(pos, end Position, value string) Ident {
	return Ident{base: mkbase(pos, end), Value: value}
}
