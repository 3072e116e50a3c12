package ast

import "fmt"

// TypeKind enumerates the primitive and composite type constructors the
// language supports. Composite kinds carry their element/field types in the
// Type struct fields below rather than as separate node types, mirroring how
// the teacher keeps Type a single struct with an optional Generics list.
type TypeKind int

const (
	TUnknown TypeKind = iota
	TU8
	TU16
	TU32
	TU64
	TU128
	TU256
	TI8
	TI16
	TI32
	TI64
	TI128
	TBool
	TAddress
	TString
	TBytes
	TMap
	TVec
	TArray
	TTuple
	TStruct
	TOption
	TResult
	TVoid
)

var unsignedWidth = map[TypeKind]int{
	TU8: 8, TU16: 16, TU32: 32, TU64: 64, TU128: 128, TU256: 256,
}

var signedWidth = map[TypeKind]int{
	TI8: 8, TI16: 16, TI32: 32, TI64: 64, TI128: 128,
}

// Type is the single representation used for every type position: variable
// declarations, parameters, return types, struct fields and literals all
// point at a *Type. Composite kinds use Name/Key/Elem/Elems/OkType/ErrT/Size
// as needed; the unused fields are left zero.
type Type struct {
	Kind   TypeKind
	Name   string  // struct name when Kind == TStruct
	Key    *Type   // map key
	Elem   *Type   // map value / vec element / array element / option inner
	Elems  []*Type // tuple members
	OkType *Type   // Result ok type
	ErrT   *Type   // Result err type
	Size   int     // fixed array size, 0 meaning dynamic
}

func U8() *Type       { return &Type{Kind: TU8} }
func U16() *Type      { return &Type{Kind: TU16} }
func U32() *Type      { return &Type{Kind: TU32} }
func U64() *Type      { return &Type{Kind: TU64} }
func U128() *Type     { return &Type{Kind: TU128} }
func U256() *Type     { return &Type{Kind: TU256} }
func I8() *Type       { return &Type{Kind: TI8} }
func I16() *Type      { return &Type{Kind: TI16} }
func I32() *Type      { return &Type{Kind: TI32} }
func I64() *Type      { return &Type{Kind: TI64} }
func I128() *Type     { return &Type{Kind: TI128} }
func BoolT() *Type    { return &Type{Kind: TBool} }
func AddressT() *Type { return &Type{Kind: TAddress} }
func StringT() *Type  { return &Type{Kind: TString} }
func BytesT() *Type   { return &Type{Kind: TBytes} }
func VoidT() *Type    { return &Type{Kind: TVoid} }

func MapT(k, v *Type) *Type      { return &Type{Kind: TMap, Key: k, Elem: v} }
func VecT(elem *Type) *Type      { return &Type{Kind: TVec, Elem: elem} }
func ArrayT(elem *Type, n int) *Type { return &Type{Kind: TArray, Elem: elem, Size: n} }
func TupleT(elems ...*Type) *Type { return &Type{Kind: TTuple, Elems: elems} }
func StructT(name string) *Type  { return &Type{Kind: TStruct, Name: name} }
func OptionT(inner *Type) *Type  { return &Type{Kind: TOption, Elem: inner} }
func ResultT(ok, errT *Type) *Type { return &Type{Kind: TResult, OkType: ok, ErrT: errT} }

// IsSignedInt reports whether t is one of the signed integer kinds.
func (t *Type) IsSignedInt() bool {
	_, ok := signedWidth[t.Kind]
	return ok
}

// IsUnsignedInt reports whether t is one of the unsigned integer kinds.
func (t *Type) IsUnsignedInt() bool {
	_, ok := unsignedWidth[t.Kind]
	return ok
}

// IsInteger reports whether t is any integer kind, signed or unsigned.
func (t *Type) IsInteger() bool {
	return t.IsSignedInt() || t.IsUnsignedInt()
}

// Width returns the bit width of an integer type, or 0 if t is not numeric.
func (t *Type) Width() int {
	if w, ok := unsignedWidth[t.Kind]; ok {
		return w
	}
	if w, ok := signedWidth[t.Kind]; ok {
		return w
	}
	return 0
}

// Equal reports structural equality, treating two struct types as equal iff
// they carry the same nominal name (nominal typing for structs, structural
// for everything else).
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind == TUnknown || o.Kind == TUnknown {
		// The unknown sentinel stands in for a type the analyzer could not
		// infer after an earlier error; it unifies with anything so a single
		// failure doesn't cascade into unrelated false positives downstream.
		return true
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TStruct:
		return t.Name == o.Name
	case TMap:
		return t.Key.Equal(o.Key) && t.Elem.Equal(o.Elem)
	case TVec, TArray, TOption:
		if t.Kind == TArray && t.Size != o.Size {
			return false
		}
		return t.Elem.Equal(o.Elem)
	case TTuple:
		if len(t.Elems) != len(o.Elems) {
			return false
		}
		for i := range t.Elems {
			if !t.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case TResult:
		return t.OkType.Equal(o.OkType) && t.ErrT.Equal(o.ErrT)
	default:
		return true
	}
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TU8:
		return "u8"
	case TU16:
		return "u16"
	case TU32:
		return "u32"
	case TU64:
		return "u64"
	case TU128:
		return "u128"
	case TU256:
		return "u256"
	case TI8:
		return "i8"
	case TI16:
		return "i16"
	case TI32:
		return "i32"
	case TI64:
		return "i64"
	case TI128:
		return "i128"
	case TBool:
		return "bool"
	case TAddress:
		return "address"
	case TString:
		return "string"
	case TBytes:
		return "bytes"
	case TVoid:
		return "()"
	case TMap:
		return fmt.Sprintf("Map<%s, %s>", t.Key, t.Elem)
	case TVec:
		return fmt.Sprintf("Vec<%s>", t.Elem)
	case TArray:
		return fmt.Sprintf("[%s; %d]", t.Elem, t.Size)
	case TTuple:
		s := "("
		for i, e := range t.Elems {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + ")"
	case TStruct:
		return t.Name
	case TOption:
		return fmt.Sprintf("Option<%s>", t.Elem)
	case TResult:
		return fmt.Sprintf("Result<%s, %s>", t.OkType, t.ErrT)
	default:
		return "<unknown>"
	}
}

// integerLattice orders integer kinds by width within their signedness class,
// used by the semantic analyzer's Subtype constraint to decide whether a
// narrower literal may widen into a wider expected type.
var integerLattice = []TypeKind{TU8, TU16, TU32, TU64, TU128, TU256}
var signedLattice = []TypeKind{TI8, TI16, TI32, TI64, TI128}

// CanWidenTo reports whether t may be implicitly widened to target: either
// both have the same kind, or both are integers of the same signedness and
// target is no narrower than t.
func (t *Type) CanWidenTo(target *Type) bool {
	if t.Kind == target.Kind {
		return true
	}
	if t.IsUnsignedInt() && target.IsUnsignedInt() {
		return rank(integerLattice, t.Kind) <= rank(integerLattice, target.Kind)
	}
	if t.IsSignedInt() && target.IsSignedInt() {
		return rank(signedLattice, t.Kind) <= rank(signedLattice, target.Kind)
	}
	return false
}

func rank(lattice []TypeKind, k TypeKind) int {
	for i, x := range lattice {
		if x == k {
			return i
		}
	}
	return -1
}
