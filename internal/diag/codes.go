package diag

import "fmt"

// Code identifies a specific diagnostic. Ranges are grouped by pass so
// that a reader can tell which stage raised a given diagnostic from the
// numeric code alone (spec §7 error taxonomy).
type Code uint16

const (
	UnknownCode Code = 0

	// Name resolution (spec §4.4), 3000s.
	ResDuplicateItem     Code = 3001
	ResDuplicateType     Code = 3002
	ResUnresolvedName    Code = 3003
	ResNotAType          Code = 3004
	ResNotAValue         Code = 3005
	ResMissingField      Code = 3006
	ResExtraField        Code = 3007
	ResDuplicateField    Code = 3008
	ResUnresolvedTypeStat Code = 3009

	// type_query (spec §4.5.1), 3100s.
	TypeUnresolvableNode Code = 3101
	TypeTraitNotConcrete Code = 3102

	// expr_query / expression checker (spec §4.6), 3200s.
	ExprTypeMismatch       Code = 3201
	ExprMutabilityViolation Code = 3202
	ExprInvalidOperation   Code = 3203
	ExprArityMismatch      Code = 3204
	ExprUnknownField       Code = 3205
	ExprUnknownMethod      Code = 3206
	ExprInvalidCast        Code = 3207
	ExprNotAPlace          Code = 3208

	// const_query (spec §4.5.3), 3300s.
	ConstRequirementFailed Code = 3301
	ConstCyclic            Code = 3302

	// Control-flow linking (spec §4.7), 3400s.
	CFlowReturnOutsideFunction   Code = 3401
	CFlowBreakOutsideLoop        Code = 3402
	CFlowContinueOutsideLoop     Code = 3403

	// Exit-check (spec §4.8), 3500s.
	ExitOutsideMain   Code = 3501
	ExitNotFinal      Code = 3502
	ExitMissing       Code = 3503
	ExitTrailingExpr  Code = 3504

	// bind_pattern_type (spec §4.5.4), 3600s.
	PatternMutabilityMismatch Code = 3601
	PatternExpectedReference  Code = 3602
	PatternUnknownField       Code = 3603
	PatternMissingField       Code = 3604
	PatternDuplicateField     Code = 3605
)

func (c Code) String() string {
	return fmt.Sprintf("E%04d", uint16(c))
}
