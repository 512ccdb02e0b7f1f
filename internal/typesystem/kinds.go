package typesystem

// Kind tags the subtype of an OBJECT annotation. The set is open: builtin
// registries may introduce their own kinds.
type Kind string

const (
	KindAny          Kind = "any"
	KindFloat2       Kind = "float2"
	KindFloat3       Kind = "float3"
	KindFloat4       Kind = "float4"
	KindNormal       Kind = "normal"
	KindMatrix3      Kind = "matrix3"
	KindMatrix4      Kind = "matrix4"
	KindTexture      Kind = "texture"
	KindColorClosure Kind = "color_closure"
)

// VectorKind returns the float vector kind with n components.
func VectorKind(n int) (Kind, bool) {
	switch n {
	case 2:
		return KindFloat2, true
	case 3:
		return KindFloat3, true
	case 4:
		return KindFloat4, true
	}
	return "", false
}
