package ast

import "strings"

// Visibility controls who may invoke a function and, on the resource-oriented
// (Move) backends, whether it is emitted as an entry function. The
// account-oriented backend emits every function as a program entry.
type Visibility int

const (
	Private Visibility = iota
	Public
	Internal
	External
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Internal:
		return "internal"
	case External:
		return "external"
	default:
		return "private"
	}
}

// Program is the root node: one or more contracts plus the imports and type
// aliases shared across them.
type Program struct {
	base
	Imports    []*Import
	TypeAlias  []*TypeAlias
	Contracts  []*Contract
}

func (p *Program) NodeType() NodeType { return NodeProgram }
func (p *Program) String() string {
	var sb strings.Builder
	for _, c := range p.Contracts {
		sb.WriteString(c.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Import names a namespace path brought into scope, e.g. `use std::signer;`.
type Import struct {
	base
	Path  []string
	Alias string // empty if not aliased
}

func (i *Import) NodeType() NodeType { return NodeImport }
func (i *Import) String() string     { return "use " + strings.Join(i.Path, "::") }

// TypeAlias binds a name to an existing type, e.g. `type Balance = u64;`.
type TypeAlias struct {
	base
	Name string
	Type *Type
}

func (t *TypeAlias) NodeType() NodeType { return NodeTypeAlias }
func (t *TypeAlias) String() string     { return "type " + t.Name + " = " + t.Type.String() }

// Contract is the unit of deployment: state, structs, events, modifiers and
// functions that together form one on-chain program.
type Contract struct {
	base
	Name       Ident
	State      []*StateVariable
	Structs    []*StructDef
	Events     []*EventDef
	Modifiers  []*Modifier
	Functions  []*Function
}

func (c *Contract) NodeType() NodeType { return NodeContract }
func (c *Contract) String() string {
	var sb strings.Builder
	sb.WriteString("contract " + c.Name.Value + " {\n")
	for _, s := range c.State {
		sb.WriteString("  " + s.String() + "\n")
	}
	for _, fn := range c.Functions {
		sb.WriteString("  " + fn.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// Ident is a bare identifier reference, used for names wherever a node needs
// a positioned name rather than a bare string.
type Ident struct {
	base
	Value string
}

func (i Ident) NodeType() NodeType { return NodeIdentExpr }
func (i Ident) String() string     { return i.Value }

// StateVariable is a contract-level storage slot.
type StateVariable struct {
	base
	Name        string
	Type        *Type
	Visibility  Visibility
	Mutable     bool
	Initializer Expr // nil if zero-initialized
}

func (s *StateVariable) NodeType() NodeType { return NodeStateVariable }
func (s *StateVariable) String() string {
	kw := "let"
	if s.Mutable {
		kw = "let mut"
	}
	out := kw + " " + s.Name + ": " + s.Type.String()
	if s.Initializer != nil {
		out += " = " + s.Initializer.String()
	}
	return out + ";"
}

// StructDef is a nominal record type.
type StructDef struct {
	base
	Name   string
	Fields []*StructField
}

func (s *StructDef) NodeType() NodeType { return NodeStructDef }
func (s *StructDef) String() string {
	var sb strings.Builder
	sb.WriteString("struct " + s.Name + " {\n")
	for _, f := range s.Fields {
		sb.WriteString("  " + f.String() + ",\n")
	}
	sb.WriteString("}")
	return sb.String()
}

type StructField struct {
	base
	Name string
	Type *Type
}

func (f *StructField) NodeType() NodeType { return NodeStructField }
func (f *StructField) String() string     { return f.Name + ": " + f.Type.String() }

// EventDef declares a loggable event with optionally-indexed parameters.
type EventDef struct {
	base
	Name   string
	Params []*EventParam
}

func (e *EventDef) NodeType() NodeType { return NodeEventDef }
func (e *EventDef) String() string {
	var sb strings.Builder
	sb.WriteString("event " + e.Name + "(")
	for i, p := range e.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	return sb.String()
}

type EventParam struct {
	base
	Name    string
	Type    *Type
	Indexed bool
}

func (p *EventParam) NodeType() NodeType { return NodeEventParam }
func (p *EventParam) String() string {
	if p.Indexed {
		return "indexed " + p.Name + ": " + p.Type.String()
	}
	return p.Name + ": " + p.Type.String()
}

// Modifier is a named precondition block, e.g. `modifier onlyOwner { ... }`,
// referenced by name from a function's modifier list.
type Modifier struct {
	base
	Name   string
	Params []*Parameter
	Body   *Block
}

func (m *Modifier) NodeType() NodeType { return NodeModifier }
func (m *Modifier) String() string     { return "modifier " + m.Name }

// Function is a callable member of a contract.
type Function struct {
	base
	Name       string
	Visibility Visibility
	Params     []*Parameter
	Return     *Type // nil means void
	Modifiers  []string
	IsPayable  bool
	IsView     bool
	Reads      []string // not filled in by the parser or analyzer; no emitter reads it
	Writes     []string // likewise; the Move emitter adds `acquires State` to every function
	Body       *Block
}

func (f *Function) NodeType() NodeType { return NodeFunction }
func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString(f.Visibility.String() + " fn " + f.Name + "(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if f.Return != nil {
		sb.WriteString(": " + f.Return.String())
	}
	return sb.String()
}

type Parameter struct {
	base
	Name    string
	Type    *Type
	Mutable bool
}

func (p *Parameter) NodeType() NodeType { return NodeParameter }
func (p *Parameter) String() string     { return p.Name + ": " + p.Type.String() }
