package syntax

type (
	// FileID identifies a source file's top-level statement list.
	FileID uint32
	// ExprID identifies an expression node.
	ExprID uint32
	// StmtID identifies a statement node (including declarations, which
	// TypeScript's own grammar treats as statements).
	StmtID uint32
	// TypeExprID identifies a type-annotation syntax node. Distinct from
	// types.TypeID, which identifies a resolved, interned semantic type.
	TypeExprID uint32
)

const (
	NoFileID     FileID     = 0
	NoExprID     ExprID     = 0
	NoStmtID     StmtID     = 0
	NoTypeExprID TypeExprID = 0
)

func (id FileID) IsValid() bool     { return id != NoFileID }
func (id ExprID) IsValid() bool     { return id != NoExprID }
func (id StmtID) IsValid() bool     { return id != NoStmtID }
func (id TypeExprID) IsValid() bool { return id != NoTypeExprID }
