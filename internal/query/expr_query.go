package query

import (
	"fortio.org/safecast"

	"semcore/internal/diag"
	"semcore/internal/hir"
	"semcore/internal/types"
)

// ExpectationKind tags the shape of a TypeExpectation (spec §4.5.2).
type ExpectationKind uint8

const (
	ExpectNone ExpectationKind = iota
	ExpectExact
	ExpectExactConst
)

// Expectation is the TypeExpectation value threaded through expr_query.
type Expectation struct {
	Kind ExpectationKind
	Type types.TypeID
}

// None is the no-constraint expectation.
func None() Expectation { return Expectation{Kind: ExpectNone} }

// Exact requires the result be assignable to t.
func Exact(t types.TypeID) Expectation { return Expectation{Kind: ExpectExact, Type: t} }

// ExactConst requires the result be assignable to t and yield a const value.
func ExactConst(t types.TypeID) Expectation { return Expectation{Kind: ExpectExactConst, Type: t} }

// ExprQuery implements expr_query (spec §4.5.2): reuse the cached
// ExprInfo when the cache policy allows it, otherwise recompute via the
// expression checker and store the fresh result back on the node.
func (c *Checker) ExprQuery(expr hir.Expr, exp Expectation) hir.ExprInfo {
	base := expr.Base()
	if base.Info != nil && c.cacheSatisfies(*base.Info, exp) {
		return *base.Info
	}
	info := c.check(expr, exp)
	base.Info = &info
	return info
}

func (c *Checker) cacheSatisfies(info hir.ExprInfo, exp Expectation) bool {
	switch exp.Kind {
	case ExpectNone:
		return true
	case ExpectExact:
		return info.HasType && c.IsAssignableTo(info.Type, exp.Type)
	case ExpectExactConst:
		return info.HasType && c.IsAssignableTo(info.Type, exp.Type) && info.ConstValue != nil
	default:
		return false
	}
}

// check dispatches to the expression checker rule for expr's concrete
// kind (spec §4.6).
func (c *Checker) check(expr hir.Expr, exp Expectation) hir.ExprInfo {
	switch e := expr.(type) {
	case *hir.ExprLiteral:
		return c.checkLiteral(e)
	case *hir.ExprPath:
		return c.checkPath(e)
	case *hir.ExprBinaryOp:
		return c.checkBinary(e)
	case *hir.ExprUnaryOp:
		return c.checkUnary(e)
	case *hir.ExprReference:
		return c.checkReference(e)
	case *hir.ExprDeref:
		return c.checkDeref(e)
	case *hir.ExprAssign:
		return c.checkAssign(e)
	case *hir.ExprCompoundAssign:
		return c.checkCompoundAssign(e)
	case *hir.ExprIndex:
		return c.checkIndex(e)
	case *hir.ExprFieldAccess:
		return c.checkFieldAccess(e)
	case *hir.ExprStructLit:
		return c.checkStructLit(e)
	case *hir.ExprArrayLit:
		return c.checkArrayLit(e, exp)
	case *hir.ExprArrayRepeat:
		return c.checkArrayRepeat(e)
	case *hir.ExprCall:
		return c.checkCall(e)
	case *hir.ExprMethodCall:
		return c.checkMethodCall(e)
	case *hir.ExprIf:
		return c.checkIf(e, exp)
	case *hir.ExprBlock:
		return c.checkBlock(e, exp)
	case *hir.ExprLoop:
		return c.checkLoop(e)
	case *hir.ExprWhile:
		return c.checkWhile(e)
	case *hir.ExprBreak:
		return c.checkBreak(e)
	case *hir.ExprContinue:
		return c.checkContinue(e)
	case *hir.ExprReturn:
		return c.checkReturn(e)
	case *hir.ExprCast:
		return c.checkCast(e)
	default:
		c.report(diag.ExprInvalidOperation, expr.Base().Span, "unhandled expression kind")
		return c.errInfo()
	}
}

// --- literal, path --------------------------------------------------------

func (c *Checker) checkLiteral(e *hir.ExprLiteral) hir.ExprInfo {
	switch e.Kind {
	case hir.LitInt:
		ty := c.Types.Primitive(types.PrimAnyInt)
		if e.IntUnsigned {
			ty = c.Types.Primitive(types.PrimAnyUInt)
		}
		if e.HasSuffix {
			ty = c.Types.Primitive(e.Suffix)
		}
		var cv hir.ConstVariant
		if e.IntUnsigned {
			cv = hir.UintConst(uint32(e.IntValue))
		} else {
			cv = hir.IntConst(int32(e.IntValue))
		}
		return hir.ExprInfo{Type: ty, HasType: true, PlaceKind: hir.PlaceValue, ConstValue: &cv}
	case hir.LitBool:
		cv := hir.BoolConst(e.BoolValue)
		return hir.ExprInfo{Type: c.Types.Primitive(types.PrimBool), HasType: true, PlaceKind: hir.PlaceValue, ConstValue: &cv}
	case hir.LitChar:
		cv := hir.CharConst(e.CharValue)
		return hir.ExprInfo{Type: c.Types.Primitive(types.PrimChar), HasType: true, PlaceKind: hir.PlaceValue, ConstValue: &cv}
	case hir.LitString:
		cv := hir.StringConst(e.StringValue)
		return hir.ExprInfo{Type: c.Types.Primitive(types.PrimString), HasType: true, PlaceKind: hir.PlaceValue, ConstValue: &cv}
	default:
		return c.errInfo()
	}
}

func (c *Checker) checkPath(e *hir.ExprPath) hir.ExprInfo {
	switch def := e.Resolved.(type) {
	case *hir.BindingDef:
		if !def.IsResolved() {
			c.report(diag.ResUnresolvedName, e.Span, "binding used before it is resolved")
			return c.errInfo()
		}
		ty := c.TypeQuery(def.Local.Type)
		return hir.ExprInfo{Type: ty, HasType: true, PlaceKind: hir.PlacePlace, IsMutable: def.Local.Mutable}
	case *hir.ConstDef:
		v, ok := c.ConstQueryDef(def)
		ty := c.TypeQuery(def.Type)
		info := hir.ExprInfo{Type: ty, HasType: true, PlaceKind: hir.PlaceValue}
		if ok {
			info.ConstValue = &v
		}
		return info
	case *hir.Function:
		// A bare function path used as a value names the function itself;
		// the language has no function-pointer type, so this is only
		// meaningful as the callee of ExprCall, which resolves Target
		// directly rather than going through checkPath.
		return hir.ExprInfo{Type: c.Types.Invalid(), HasType: false}
	default:
		c.report(diag.ResUnresolvedName, e.Span, "unresolved path")
		return c.errInfo()
	}
}

// --- operators --------------------------------------------------------

func (c *Checker) checkBinary(e *hir.ExprBinaryOp) hir.ExprInfo {
	switch {
	case e.Op.IsArith():
		return c.checkArith(e)
	case e.Op.IsComparison():
		return c.checkComparison(e)
	case e.Op.IsLogical():
		return c.checkLogical(e)
	default:
		c.report(diag.ExprInvalidOperation, e.Span, "unknown binary operator")
		return c.errInfo()
	}
}

func (c *Checker) checkArith(e *hir.ExprBinaryOp) hir.ExprInfo {
	lhs := c.ExprQuery(e.Left, None())
	rhs := c.ExprQuery(e.Right, None())
	if !lhs.HasType || !rhs.HasType {
		return c.errInfo()
	}
	if !c.Types.IsInteger(lhs.Type) || !c.Types.IsInteger(rhs.Type) {
		c.report(diag.ExprInvalidOperation, e.Span, "arithmetic requires integer operands")
		return c.errInfo()
	}
	result, ok := c.Unify(lhs.Type, rhs.Type)
	if !ok {
		c.report(diag.ExprTypeMismatch, e.Span, "operand types are incompatible")
		return c.errInfo()
	}
	info := hir.ExprInfo{Type: result, HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: lhs.CanDiverge || rhs.CanDiverge}
	if lv, ok := lhs.Const(); ok {
		if rv, ok := rhs.Const(); ok {
			if cv, ok := foldArith(e.Op, lv, rv); ok {
				info.ConstValue = &cv
			}
		}
	}
	return info
}

func foldArith(op hir.BinaryOp, a, b hir.ConstVariant) (hir.ConstVariant, bool) {
	signed := a.Kind == hir.ConstInt || b.Kind == hir.ConstInt
	if signed {
		x, y := constAsInt(a), constAsInt(b)
		switch op {
		case hir.BinAdd:
			return hir.IntConst(x + y), true
		case hir.BinSub:
			return hir.IntConst(x - y), true
		case hir.BinMul:
			return hir.IntConst(x * y), true
		case hir.BinDiv:
			if y == 0 {
				return hir.ConstVariant{}, false
			}
			return hir.IntConst(x / y), true
		case hir.BinMod:
			if y == 0 {
				return hir.ConstVariant{}, false
			}
			return hir.IntConst(x % y), true
		}
		return hir.ConstVariant{}, false
	}
	x, y := constAsUint(a), constAsUint(b)
	switch op {
	case hir.BinAdd:
		return hir.UintConst(x + y), true
	case hir.BinSub:
		return hir.UintConst(x - y), true
	case hir.BinMul:
		return hir.UintConst(x * y), true
	case hir.BinDiv:
		if y == 0 {
			return hir.ConstVariant{}, false
		}
		return hir.UintConst(x / y), true
	case hir.BinMod:
		if y == 0 {
			return hir.ConstVariant{}, false
		}
		return hir.UintConst(x % y), true
	}
	return hir.ConstVariant{}, false
}

func constAsInt(v hir.ConstVariant) int32 {
	if v.Kind == hir.ConstUint {
		return int32(v.Uint)
	}
	return v.Int
}

func constAsUint(v hir.ConstVariant) uint32 {
	if v.Kind == hir.ConstInt {
		return uint32(v.Int)
	}
	return v.Uint
}

func (c *Checker) checkComparison(e *hir.ExprBinaryOp) hir.ExprInfo {
	lhs := c.ExprQuery(e.Left, None())
	rhs := c.ExprQuery(e.Right, None())
	if !lhs.HasType || !rhs.HasType {
		return c.errInfo()
	}
	if _, ok := c.Unify(lhs.Type, rhs.Type); !ok {
		c.report(diag.ExprTypeMismatch, e.Span, "comparison operands are incompatible")
		return c.errInfo()
	}
	return hir.ExprInfo{Type: c.Types.Primitive(types.PrimBool), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: lhs.CanDiverge || rhs.CanDiverge}
}

func (c *Checker) checkLogical(e *hir.ExprBinaryOp) hir.ExprInfo {
	boolTy := c.Types.Primitive(types.PrimBool)
	lhs := c.ExprQuery(e.Left, Exact(boolTy))
	rhs := c.ExprQuery(e.Right, Exact(boolTy))
	if !lhs.HasType || !c.IsAssignableTo(lhs.Type, boolTy) {
		c.report(diag.ExprTypeMismatch, e.Left.Base().Span, "expected bool")
	}
	if !rhs.HasType || !c.IsAssignableTo(rhs.Type, boolTy) {
		c.report(diag.ExprTypeMismatch, e.Right.Base().Span, "expected bool")
	}
	return hir.ExprInfo{Type: boolTy, HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: lhs.CanDiverge}
}

func (c *Checker) checkUnary(e *hir.ExprUnaryOp) hir.ExprInfo {
	inner := c.ExprQuery(e.Operand, None())
	if !inner.HasType {
		return c.errInfo()
	}
	switch e.Op {
	case hir.UnaryNeg:
		if !c.Types.IsInteger(inner.Type) {
			c.report(diag.ExprInvalidOperation, e.Span, "unary - requires an integer operand")
			return c.errInfo()
		}
		info := hir.ExprInfo{Type: inner.Type, HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: inner.CanDiverge}
		if v, ok := inner.Const(); ok {
			cv := hir.IntConst(-constAsInt(v))
			info.ConstValue = &cv
		}
		return info
	case hir.UnaryNot:
		boolTy := c.Types.Primitive(types.PrimBool)
		if !c.IsAssignableTo(inner.Type, boolTy) {
			c.report(diag.ExprInvalidOperation, e.Span, "unary ! requires a bool operand")
			return c.errInfo()
		}
		info := hir.ExprInfo{Type: boolTy, HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: inner.CanDiverge}
		if v, ok := inner.Const(); ok && v.Kind == hir.ConstBool {
			cv := hir.BoolConst(!v.Bool)
			info.ConstValue = &cv
		}
		return info
	default:
		return c.errInfo()
	}
}

func (c *Checker) checkReference(e *hir.ExprReference) hir.ExprInfo {
	inner := c.ExprQuery(e.Operand, None())
	if !inner.HasType {
		return c.errInfo()
	}
	if inner.PlaceKind != hir.PlacePlace {
		c.report(diag.ExprNotAPlace, e.Span, "cannot take a reference to a non-place expression")
		return c.errInfo()
	}
	if e.Mutable && !inner.IsMutable {
		c.report(diag.ExprMutabilityViolation, e.Span, "cannot take &mut of an immutable place")
		return c.errInfo()
	}
	return hir.ExprInfo{Type: c.Types.Reference(inner.Type, e.Mutable), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: inner.CanDiverge}
}

func (c *Checker) checkDeref(e *hir.ExprDeref) hir.ExprInfo {
	inner := c.ExprQuery(e.Operand, None())
	if !inner.HasType || !c.Types.IsReference(inner.Type) {
		c.report(diag.ExprInvalidOperation, e.Span, "cannot dereference a non-reference value")
		return c.errInfo()
	}
	return hir.ExprInfo{
		Type:       c.Types.Referenced(inner.Type),
		HasType:    true,
		PlaceKind:  hir.PlacePlace,
		IsMutable:  c.Types.IsMutableReference(inner.Type),
		CanDiverge: inner.CanDiverge,
	}
}

// --- assignment --------------------------------------------------------

func (c *Checker) checkAssign(e *hir.ExprAssign) hir.ExprInfo {
	lhs := c.ExprQuery(e.LHS, None())
	if !lhs.HasType {
		return c.errInfo()
	}
	if lhs.PlaceKind != hir.PlacePlace || !lhs.IsMutable {
		c.report(diag.ExprMutabilityViolation, e.Span, "left-hand side is not a mutable place")
	}
	rhs := c.ExprQuery(e.RHS, Exact(lhs.Type))
	if !rhs.HasType || !c.IsAssignableTo(rhs.Type, lhs.Type) {
		c.report(diag.ExprTypeMismatch, e.RHS.Base().Span, "value is not assignable to the target's type")
	}
	return hir.ExprInfo{Type: c.Types.Unit(), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: lhs.CanDiverge || rhs.CanDiverge}
}

func (c *Checker) checkCompoundAssign(e *hir.ExprCompoundAssign) hir.ExprInfo {
	lhs := c.ExprQuery(e.LHS, None())
	if !lhs.HasType {
		return c.errInfo()
	}
	if lhs.PlaceKind != hir.PlacePlace || !lhs.IsMutable {
		c.report(diag.ExprMutabilityViolation, e.Span, "left-hand side is not a mutable place")
	}
	if !c.Types.IsInteger(lhs.Type) {
		c.report(diag.ExprInvalidOperation, e.Span, "compound assignment requires an integer target")
	}
	rhs := c.ExprQuery(e.RHS, Exact(lhs.Type))
	if !rhs.HasType || !c.IsAssignableTo(rhs.Type, lhs.Type) {
		c.report(diag.ExprTypeMismatch, e.RHS.Base().Span, "value is not assignable to the target's type")
	}
	return hir.ExprInfo{Type: c.Types.Unit(), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: lhs.CanDiverge || rhs.CanDiverge}
}

// --- index, field, struct/array literals --------------------------------------------------------

func (c *Checker) checkIndex(e *hir.ExprIndex) hir.ExprInfo {
	arr := c.ExprQuery(e.Array, None())
	if !arr.HasType {
		return c.errInfo()
	}
	arrTy := arr.Type
	mutable := arr.IsMutable
	if c.Types.IsReference(arrTy) {
		mutable = c.Types.IsMutableReference(arrTy)
		arrTy = c.Types.Referenced(arrTy)
	}
	t, ok := c.Types.Lookup(arrTy)
	if !ok || t.Kind != types.KindArray {
		c.report(diag.ExprInvalidOperation, e.Span, "indexing requires an array (or reference to one)")
		return c.errInfo()
	}
	usize := c.Types.Primitive(types.PrimUSize)
	idx := c.ExprQuery(e.Index, Exact(usize))
	if !idx.HasType || !c.IsAssignableTo(idx.Type, usize) {
		c.report(diag.ExprTypeMismatch, e.Index.Base().Span, "index must be usize")
	}
	return hir.ExprInfo{Type: t.Elem, HasType: true, PlaceKind: hir.PlacePlace, IsMutable: mutable, CanDiverge: arr.CanDiverge || idx.CanDiverge}
}

func (c *Checker) checkFieldAccess(e *hir.ExprFieldAccess) hir.ExprInfo {
	recv := c.ExprQuery(e.Receiver, None())
	if !recv.HasType {
		return c.errInfo()
	}
	recvTy := recv.Type
	mutable := recv.IsMutable
	if c.Types.IsReference(recvTy) {
		mutable = c.Types.IsMutableReference(recvTy)
		recvTy = c.Types.Referenced(recvTy)
	}
	t, ok := c.Types.Lookup(recvTy)
	if !ok || t.Kind != types.KindStruct {
		c.report(diag.ExprInvalidOperation, e.Span, "field access requires a struct (or reference to one)")
		return c.errInfo()
	}
	def := c.Defs.Struct(t.Def)
	if def == nil {
		return c.errInfo()
	}
	idx := def.FieldIndex(e.Field)
	if idx < 0 {
		c.report(diag.ExprUnknownField, e.Span, "no such field on this struct")
		return c.errInfo()
	}
	e.FieldIndex = idx
	fieldTy := c.TypeQuery(def.Fields[idx].Type)
	return hir.ExprInfo{Type: fieldTy, HasType: true, PlaceKind: hir.PlacePlace, IsMutable: mutable, CanDiverge: recv.CanDiverge}
}

func (c *Checker) checkStructLit(e *hir.ExprStructLit) hir.ExprInfo {
	if e.Def == nil {
		c.report(diag.ResUnresolvedName, e.Span, "unresolved struct type in literal")
		return c.errInfo()
	}
	ty := c.typeIDOfDef(e.Def, e.Span)
	if len(e.CanonicalValues) != len(e.Def.Fields) {
		c.report(diag.ResMissingField, e.Span, "struct literal is missing one or more fields")
		return c.errInfo()
	}
	diverges := false
	for i, field := range e.Def.Fields {
		fieldTy := c.TypeQuery(field.Type)
		val := e.CanonicalValues[i]
		if val == nil {
			c.report(diag.ResMissingField, e.Span, "struct literal is missing a field")
			continue
		}
		info := c.ExprQuery(val, Exact(fieldTy))
		diverges = diverges || info.CanDiverge
		if !info.HasType || !c.IsAssignableTo(info.Type, fieldTy) {
			c.report(diag.ExprTypeMismatch, val.Base().Span, "field value does not match the declared field type")
		}
	}
	return hir.ExprInfo{Type: ty, HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: diverges}
}

func (c *Checker) checkArrayLit(e *hir.ExprArrayLit, exp Expectation) hir.ExprInfo {
	var elemExpected types.TypeID
	if exp.Kind != ExpectNone {
		if t, ok := c.Types.Lookup(exp.Type); ok && t.Kind == types.KindArray {
			elemExpected = t.Elem
		}
	}
	if len(e.Elements) == 0 {
		if elemExpected == types.NoTypeID {
			c.report(diag.ExprTypeMismatch, e.Span, "cannot determine element type of an empty array literal without context")
			return c.errInfo()
		}
		return hir.ExprInfo{Type: c.Types.Array(elemExpected, 0), HasType: true, PlaceKind: hir.PlaceValue}
	}
	elemTy := elemExpected
	diverges := false
	infos := make([]hir.ExprInfo, len(e.Elements))
	for i, el := range e.Elements {
		var ex Expectation
		if elemTy != types.NoTypeID {
			ex = Exact(elemTy)
		}
		infos[i] = c.ExprQuery(el, ex)
	}
	for i, info := range infos {
		if !info.HasType {
			return c.errInfo()
		}
		diverges = diverges || info.CanDiverge
		if elemTy == types.NoTypeID {
			elemTy = info.Type
			continue
		}
		unified, ok := c.Unify(elemTy, info.Type)
		if !ok {
			c.report(diag.ExprTypeMismatch, e.Elements[i].Base().Span, "array elements have incompatible types")
			return c.errInfo()
		}
		elemTy = unified
	}
	n, err := safecast.Conv[uint32](len(e.Elements))
	if err != nil {
		c.report(diag.ExprInvalidOperation, e.Span, "array literal is too large")
		return c.errInfo()
	}
	return hir.ExprInfo{Type: c.Types.Array(elemTy, n), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: diverges}
}

func (c *Checker) checkArrayRepeat(e *hir.ExprArrayRepeat) hir.ExprInfo {
	val := c.ExprQuery(e.Value, None())
	if !val.HasType {
		return c.errInfo()
	}
	usize := c.Types.Primitive(types.PrimUSize)
	size, ok := c.ConstQuery(e.Size, usize)
	if !ok || size.Kind != hir.ConstUint {
		c.report(diag.ConstRequirementFailed, e.Size.Base().Span, "array repeat count must be a constant usize expression")
		return c.errInfo()
	}
	return hir.ExprInfo{Type: c.Types.Array(val.Type, size.Uint), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: val.CanDiverge}
}

// --- calls --------------------------------------------------------

func (c *Checker) checkCall(e *hir.ExprCall) hir.ExprInfo {
	var params []hir.Param
	var ret *hir.TypeAnnotation
	diverges := false
	switch fn := e.Target.(type) {
	case *hir.Function:
		params, ret = fn.Params, fn.ReturnType
		if c.isExitBuiltin(fn) {
			diverges = true
		}
	default:
		c.report(diag.ResUnresolvedName, e.Span, "call target did not resolve to a function")
		return c.errInfo()
	}
	if len(e.Args) != len(params) {
		c.report(diag.ExprArityMismatch, e.Span, "call has the wrong number of arguments")
	}
	for i, arg := range e.Args {
		if i >= len(params) {
			c.ExprQuery(arg, None())
			continue
		}
		paramTy := c.TypeQuery(params[i].Type)
		info := c.ExprQuery(arg, Exact(paramTy))
		diverges = diverges || info.CanDiverge
		if !info.HasType || !c.IsAssignableTo(info.Type, paramTy) {
			c.report(diag.ExprTypeMismatch, arg.Base().Span, "argument does not match the parameter's type")
		}
	}
	retTy := c.Types.Unit()
	if ret != nil {
		retTy = c.TypeQuery(ret)
	}
	return hir.ExprInfo{Type: retTy, HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: diverges}
}

// isExitBuiltin reports whether fn is the identity-significant builtin
// exit() (spec §6.3, §4.6.2: calling it marks the call as diverging).
func (c *Checker) isExitBuiltin(fn *hir.Function) bool {
	return fn == c.ExitBuiltin
}

func (c *Checker) checkMethodCall(e *hir.ExprMethodCall) hir.ExprInfo {
	recv := c.ExprQuery(e.Receiver, None())
	if !recv.HasType {
		return c.errInfo()
	}
	recvTy := recv.Type
	if c.Types.IsReference(recvTy) {
		// Method resolution auto-derefs at most once (spec §9 open question,
		// resolved: once).
		recvTy = c.Types.Referenced(recvTy)
	}
	t, ok := c.Types.Lookup(recvTy)
	if !ok || (t.Kind != types.KindStruct && t.Kind != types.KindEnum) {
		c.report(diag.ExprInvalidOperation, e.Span, "method call target is not a nominal type")
		return c.errInfo()
	}
	def := c.Defs.Lookup(t.Def)
	if def == nil {
		return c.errInfo()
	}
	method, ok := c.Impls.FindMethod(def, e.Method)
	if !ok {
		c.report(diag.ExprUnknownMethod, e.Span, "no such method on this type")
		return c.errInfo()
	}
	e.Resolved = method
	if len(e.Args) != len(method.Params) {
		c.report(diag.ExprArityMismatch, e.Span, "method call has the wrong number of arguments")
	}
	diverges := recv.CanDiverge
	for i, arg := range e.Args {
		if i >= len(method.Params) {
			c.ExprQuery(arg, None())
			continue
		}
		paramTy := c.TypeQuery(method.Params[i].Type)
		info := c.ExprQuery(arg, Exact(paramTy))
		diverges = diverges || info.CanDiverge
		if !info.HasType || !c.IsAssignableTo(info.Type, paramTy) {
			c.report(diag.ExprTypeMismatch, arg.Base().Span, "argument does not match the parameter's type")
		}
	}
	retTy := c.Types.Unit()
	if method.ReturnType != nil {
		retTy = c.TypeQuery(method.ReturnType)
	}
	return hir.ExprInfo{Type: retTy, HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: diverges}
}

// --- control expressions --------------------------------------------------------

func (c *Checker) checkIf(e *hir.ExprIf, exp Expectation) hir.ExprInfo {
	boolTy := c.Types.Primitive(types.PrimBool)
	cond := c.ExprQuery(e.Cond, Exact(boolTy))
	if !cond.HasType || !c.IsAssignableTo(cond.Type, boolTy) {
		c.report(diag.ExprTypeMismatch, e.Cond.Base().Span, "if condition must be bool")
	}
	then := c.ExprQuery(e.Then, exp)
	var elseInfo hir.ExprInfo
	hasElse := e.Else != nil
	if hasElse {
		elseInfo = c.ExprQuery(e.Else, exp)
	} else {
		elseInfo = hir.ExprInfo{Type: c.Types.Unit(), HasType: true}
	}
	if !then.HasType || !elseInfo.HasType {
		return c.errInfo()
	}
	result, ok := c.Unify(then.Type, elseInfo.Type)
	if !ok {
		c.report(diag.ExprTypeMismatch, e.Span, "if branches have incompatible types")
		return c.errInfo()
	}
	return hir.ExprInfo{
		Type:       result,
		HasType:    true,
		PlaceKind:  hir.PlaceValue,
		CanDiverge: cond.CanDiverge || (then.CanDiverge && elseInfo.CanDiverge),
	}
}

func (c *Checker) checkBlock(e *hir.ExprBlock, exp Expectation) hir.ExprInfo {
	diverges := false
	for _, stmt := range e.Stmts {
		switch s := stmt.(type) {
		case *hir.StmtLet:
			c.checkLet(s)
			if s.Init != nil {
				info := c.ExprQuery(s.Init, None())
				diverges = diverges || info.CanDiverge
			}
		case *hir.StmtExpr:
			info := c.ExprQuery(s.Value, None())
			diverges = diverges || info.CanDiverge
		}
	}
	if e.Final == nil {
		return hir.ExprInfo{Type: c.Types.Unit(), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: diverges}
	}
	final := c.ExprQuery(e.Final, exp)
	return hir.ExprInfo{Type: final.Type, HasType: final.HasType, PlaceKind: final.PlaceKind, IsMutable: final.IsMutable, CanDiverge: diverges || final.CanDiverge}
}

func (c *Checker) checkLet(s *hir.StmtLet) {
	var expected types.TypeID
	if s.Type != nil {
		expected = c.TypeQuery(s.Type)
	}
	var initTy types.TypeID
	if s.Init != nil {
		var exp Expectation
		if expected != types.NoTypeID {
			exp = Exact(expected)
		}
		info := c.ExprQuery(s.Init, exp)
		initTy = info.Type
		if expected != types.NoTypeID && info.HasType && !c.IsAssignableTo(info.Type, expected) {
			c.report(diag.ExprTypeMismatch, s.Init.Base().Span, "initializer does not match the declared type")
		}
	}
	final := expected
	if final == types.NoTypeID {
		final = c.DefaultInteger(initTy)
	}
	c.BindPatternType(s.Pattern, final)
}

func (c *Checker) checkLoop(e *hir.ExprLoop) hir.ExprInfo {
	c.ExprQuery(e.Body, None())
	if !e.HasBreak {
		return hir.ExprInfo{Type: c.Types.Never(), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: true}
	}
	return hir.ExprInfo{Type: e.ResultType, HasType: true, PlaceKind: hir.PlaceValue}
}

func (c *Checker) checkWhile(e *hir.ExprWhile) hir.ExprInfo {
	boolTy := c.Types.Primitive(types.PrimBool)
	cond := c.ExprQuery(e.Cond, Exact(boolTy))
	if !cond.HasType || !c.IsAssignableTo(cond.Type, boolTy) {
		c.report(diag.ExprTypeMismatch, e.Cond.Base().Span, "while condition must be bool")
	}
	c.ExprQuery(e.Body, None())
	return hir.ExprInfo{Type: c.Types.Unit(), HasType: true, PlaceKind: hir.PlaceValue}
}

func (c *Checker) checkBreak(e *hir.ExprBreak) hir.ExprInfo {
	loop, ok := e.Target.(*hir.ExprLoop)
	if ok {
		var valTy types.TypeID
		if e.Value != nil {
			var exp Expectation
			if loop.HasBreak {
				exp = Exact(loop.ResultType)
			}
			info := c.ExprQuery(e.Value, exp)
			valTy = info.Type
			if !info.HasType {
				return hir.ExprInfo{Type: c.Types.Never(), HasType: true, CanDiverge: true}
			}
		} else {
			valTy = c.Types.Unit()
		}
		if !loop.HasBreak {
			// A loop's result type is established at the statement
			// boundary (spec §8 "Boundary behaviors"): an AnyInt/AnyUInt
			// placeholder payload defaults to its concrete kind here,
			// same as checkLet does for an unannotated `let`.
			loop.ResultType = c.DefaultInteger(valTy)
			loop.HasBreak = true
		} else {
			unified, ok := c.Unify(loop.ResultType, valTy)
			if !ok {
				c.report(diag.ExprTypeMismatch, e.Span, "break value does not match the loop's established result type")
			} else {
				loop.ResultType = unified
			}
		}
	} else if e.Value != nil {
		c.ExprQuery(e.Value, None())
	}
	return hir.ExprInfo{Type: c.Types.Never(), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: true}
}

func (c *Checker) checkContinue(_ *hir.ExprContinue) hir.ExprInfo {
	return hir.ExprInfo{Type: c.Types.Never(), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: true}
}

func (c *Checker) checkReturn(e *hir.ExprReturn) hir.ExprInfo {
	var retTy types.TypeID = c.Types.Unit()
	if fn, ok := e.Target.(hir.FuncLike); ok {
		if ann := fn.FuncReturnType(); ann != nil {
			retTy = c.TypeQuery(ann)
		}
	}
	if e.Value != nil {
		info := c.ExprQuery(e.Value, Exact(retTy))
		if !info.HasType || !c.IsAssignableTo(info.Type, retTy) {
			c.report(diag.ExprTypeMismatch, e.Value.Base().Span, "returned value does not match the function's return type")
		}
	} else if !c.IsAssignableTo(c.Types.Unit(), retTy) {
		c.report(diag.ExprTypeMismatch, e.Span, "function requires a return value")
	}
	return hir.ExprInfo{Type: c.Types.Never(), HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: true}
}

func (c *Checker) checkCast(e *hir.ExprCast) hir.ExprInfo {
	inner := c.ExprQuery(e.Operand, None())
	target := c.TypeQuery(e.Target)
	if !inner.HasType {
		return c.errInfo()
	}
	boolTy := c.Types.Primitive(types.PrimBool)
	fromOK := c.Types.IsNumeric(inner.Type) || inner.Type == boolTy
	toOK := c.Types.IsNumeric(target)
	if !fromOK || !toOK {
		c.report(diag.ExprInvalidCast, e.Span, "casts are restricted to numeric<->numeric and bool->integer")
		return c.errInfo()
	}
	return hir.ExprInfo{Type: target, HasType: true, PlaceKind: hir.PlaceValue, CanDiverge: inner.CanDiverge}
}
