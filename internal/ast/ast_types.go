package ast

// NodeKind names a node variant using its ESTree "type" string.
type NodeKind string

const (
	KindProgram               NodeKind = "Program"
	KindExpressionStatement   NodeKind = "ExpressionStatement"
	KindVariableDeclaration   NodeKind = "VariableDeclaration"
	KindVariableDeclarator    NodeKind = "VariableDeclarator"
	KindReturnStatement       NodeKind = "ReturnStatement"
	KindIdentifier            NodeKind = "Identifier"
	KindLiteral               NodeKind = "Literal"
	KindArrayExpression       NodeKind = "ArrayExpression"
	KindUnaryExpression       NodeKind = "UnaryExpression"
	KindUpdateExpression      NodeKind = "UpdateExpression"
	KindBinaryExpression      NodeKind = "BinaryExpression"
	KindLogicalExpression     NodeKind = "LogicalExpression"
	KindAssignmentExpression  NodeKind = "AssignmentExpression"
	KindConditionalExpression NodeKind = "ConditionalExpression"
	KindMemberExpression      NodeKind = "MemberExpression"
	KindCallExpression        NodeKind = "CallExpression"
	KindNewExpression         NodeKind = "NewExpression"
)

func (k NodeKind) String() string { return string(k) }
