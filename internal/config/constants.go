package config

// SourceFileExt is the extension of decoded syntax tree inputs.
const SourceFileExt = ".json"

// SourceFileExtensions are all recognized input extensions.
var SourceFileExtensions = []string{".json", ".estree"}

// Project file names, searched in this order.
var ProjectFileNames = []string{"jsti.yaml", "jsti.yml"}

// Builtin object names
const (
	MathObjectName = "Math"
	Vec2ObjectName = "Vec2"
	Vec3ObjectName = "Vec3"
	Vec4ObjectName = "Vec4"
)

// Identifier that is annotated directly instead of being resolved.
const UndefinedName = "undefined"

// Default store location, relative to the working directory.
const DefaultStorePath = ".jsti/runs.db"
