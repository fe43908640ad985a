package hir

import (
	"semcore/internal/ast"
	"semcore/internal/source"
	"semcore/internal/types"
)

// Expr is the tagged union of expression forms (spec §3.2). Every
// variant embeds ExprBase and carries its own ExprInfo cache slot
// (spec §3.3), populated on demand by expr_query.
type Expr interface {
	exprNode()
	Base() *ExprBase
}

// ExprBase carries fields common to every expression node.
type ExprBase struct {
	Span source.Span
	Node ast.NodeID
	Info *ExprInfo
}

func (b *ExprBase) Base() *ExprBase { return b }

// ValueDef is anything a value-position path can resolve to (spec §4.2
// lookup_value): a local binding, a module-level const, or a function.
type ValueDef interface{ isValueDef() }

func (*BindingDef) isValueDef() {}
func (*ConstDef) isValueDef()   {}
func (*Function) isValueDef()   {}
func (*Method) isValueDef()     {}

// TypeDef is anything a type-position path can resolve to (spec §4.2
// lookup_type).
type TypeDef interface{ isTypeDef() }

func (*StructDef) isTypeDef() {}
func (*EnumDef) isTypeDef()   {}
func (*Trait) isTypeDef()     {}

// LoopLike is implemented by the two looping expression forms so
// break/continue can carry a uniform, non-owning target reference
// (spec §4.7).
type LoopLike interface {
	Expr
	loopLike()
}

// FuncLike is implemented by Function and Method so `return` can carry
// a uniform target reference regardless of which owns the current body
// (spec §4.7).
type FuncLike interface {
	FuncReturnType() *TypeAnnotation
}

// LiteralKind distinguishes the literal forms of spec §4.6's literal row.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitBool
	LitChar
	LitString
)

// ExprLiteral is an integer/bool/char/string literal.
type ExprLiteral struct {
	ExprBase
	Kind LiteralKind
	// IntValue/BoolValue/CharValue/StringValue hold the raw literal
	// payload; only the field matching Kind is meaningful.
	IntValue    int64
	IntUnsigned bool
	HasSuffix   bool // true if the literal carries an explicit type suffix (e.g. 3i32)
	Suffix      types.PrimitiveKind
	BoolValue   bool
	CharValue   rune
	StringValue string
}

func (*ExprLiteral) exprNode() {}

// ExprPath is a reference to a value by path, e.g. `x` or `Type::CONST`.
type ExprPath struct {
	ExprBase
	Path     ast.Path
	Resolved ValueDef // nil until name resolution succeeds
}

func (*ExprPath) exprNode() {}

// BinaryOp enumerates binary operators (spec §4.6).
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
)

func (op BinaryOp) IsArith() bool {
	switch op {
	case BinAdd, BinSub, BinMul, BinDiv, BinMod:
		return true
	default:
		return false
	}
}

func (op BinaryOp) IsComparison() bool {
	switch op {
	case BinEq, BinNe, BinLt, BinLe, BinGt, BinGe:
		return true
	default:
		return false
	}
}

func (op BinaryOp) IsLogical() bool { return op == BinAnd || op == BinOr }

// ExprBinaryOp is a binary operator application.
type ExprBinaryOp struct {
	ExprBase
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*ExprBinaryOp) exprNode() {}

// UnaryOp enumerates the two plain unary operators; `&`, `&mut`, and
// `*` get their own expression kinds since their semantics (place vs.
// value, mutability propagation) differ qualitatively (spec §4.6).
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
)

type ExprUnaryOp struct {
	ExprBase
	Op      UnaryOp
	Operand Expr
}

func (*ExprUnaryOp) exprNode() {}

// ExprReference is `&e` or `&mut e`.
type ExprReference struct {
	ExprBase
	Mutable bool
	Operand Expr
}

func (*ExprReference) exprNode() {}

// ExprDeref is `*e`.
type ExprDeref struct {
	ExprBase
	Operand Expr
}

func (*ExprDeref) exprNode() {}

// ExprCall is a free-function (or associated-function) call `f(args)`.
type ExprCall struct {
	ExprBase
	Callee ast.Path
	Args   []Expr
	Target ValueDef // set by name resolution; checkCall accepts only a *Function
}

func (*ExprCall) exprNode() {}

// ExprMethodCall is `e.m(args)`; the method is looked up through the
// impl table against the receiver's type once it is known, so
// resolution happens in the expression checker, not name resolution
// (spec §4.6 "Method call").
type ExprMethodCall struct {
	ExprBase
	Receiver Expr
	Method   source.StringID
	Args     []Expr
	Resolved *Method
}

func (*ExprMethodCall) exprNode() {}

// ExprFieldAccess is `e.f`.
type ExprFieldAccess struct {
	ExprBase
	Receiver Expr
	Field    source.StringID
	// FieldIndex is the resolved position within the struct's
	// canonical field order, set by the expression checker.
	FieldIndex int
}

func (*ExprFieldAccess) exprNode() {}

// ExprIndex is `a[i]`.
type ExprIndex struct {
	ExprBase
	Array Expr
	Index Expr
}

func (*ExprIndex) exprNode() {}

// StructLitField is one `name = value` entry as written in source,
// before canonicalization reorders it.
type StructLitField struct {
	Name  source.StringID
	Value Expr
	Span  source.Span
}

// ExprStructLit is `Type { field: value, ... }`. After name resolution
// canonicalizes it, CanonicalValues holds the field expressions
// reordered to match Def's declaration order (spec §4.4 "Struct
// literal canonicalization").
type ExprStructLit struct {
	ExprBase
	TypeName        ast.Path
	Def             *StructDef // resolved by name resolution
	Fields          []StructLitField
	CanonicalValues []Expr
}

func (*ExprStructLit) exprNode() {}

// ExprArrayLit is `[e1, ..., en]`.
type ExprArrayLit struct {
	ExprBase
	Elements []Expr
}

func (*ExprArrayLit) exprNode() {}

// ExprArrayRepeat is `[e; N]`.
type ExprArrayRepeat struct {
	ExprBase
	Value Expr
	Size  Expr
}

func (*ExprArrayRepeat) exprNode() {}

// Stmt is a single statement inside a block.
type Stmt interface {
	stmtNode()
	StmtSpan() source.Span
}

type stmtBase struct {
	Span source.Span
}

func (b stmtBase) StmtSpan() source.Span { return b.Span }

// StmtLet is `let pat: T = init;`.
type StmtLet struct {
	stmtBase
	Pattern Pattern
	Type    *TypeAnnotation // nil if the annotation was omitted
	Init    Expr
}

func (StmtLet) stmtNode() {}

// StmtExpr is an expression used as a statement (its value is discarded).
type StmtExpr struct {
	stmtBase
	Value Expr
}

func (StmtExpr) stmtNode() {}

// ExprBlock is `{ stmts...; final? }`.
type ExprBlock struct {
	ExprBase
	Stmts []Stmt
	Final Expr // nil if the block has no trailing (non-semicolon) expression
}

func (*ExprBlock) exprNode() {}

// ExprIf is `if c { then } else { else }` (the `else` branch, if
// present, is itself an ExprBlock or a nested ExprIf).
type ExprIf struct {
	ExprBase
	Cond Expr
	Then *ExprBlock
	Else Expr // nil, *ExprBlock, or *ExprIf
}

func (*ExprIf) exprNode() {}

// ExprLoop is `loop { body }`. Unlike ExprWhile it accumulates a result
// type from every `break value` that targets it (spec §4.6 "Loop").
type ExprLoop struct {
	ExprBase
	Body *ExprBlock

	// ResultType/HasBreak are filled in by the expression checker as it
	// unifies the payload types of every break targeting this loop.
	ResultType types.TypeID
	HasBreak   bool
}

func (*ExprLoop) exprNode() {}
func (*ExprLoop) loopLike()  {}

// ExprWhile is `while c { body }`; it never produces a value.
type ExprWhile struct {
	ExprBase
	Cond Expr
	Body *ExprBlock
}

func (*ExprWhile) exprNode() {}
func (*ExprWhile) loopLike()  {}

// ExprBreak is `break;` or `break value;`. Target is filled in by the
// control-flow linking pass (spec §4.7).
type ExprBreak struct {
	ExprBase
	Value  Expr // nil for a valueless break
	Target LoopLike
}

func (*ExprBreak) exprNode() {}

// ExprContinue is `continue;`.
type ExprContinue struct {
	ExprBase
	Target LoopLike
}

func (*ExprContinue) exprNode() {}

// ExprReturn is `return;` or `return value;`.
type ExprReturn struct {
	ExprBase
	Value  Expr // nil for a valueless return
	Target FuncLike
}

func (*ExprReturn) exprNode() {}

// ExprAssign is `lhs = rhs`.
type ExprAssign struct {
	ExprBase
	LHS Expr
	RHS Expr
}

func (*ExprAssign) exprNode() {}

// ExprCompoundAssign is `lhs op= rhs`.
type ExprCompoundAssign struct {
	ExprBase
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

func (*ExprCompoundAssign) exprNode() {}

// ExprCast is `e as T`.
type ExprCast struct {
	ExprBase
	Operand Expr
	Target  *TypeAnnotation
}

func (*ExprCast) exprNode() {}
