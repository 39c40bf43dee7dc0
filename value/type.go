package value

// Type is the JSON data model type used by schemas. Unknown acts as a
// wildcard in schemas and is what an Empty value reports.
type Type int

const (
	TypeUnknown Type = iota
	TypeNull
	TypeBoolean
	TypeInteger
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

var typeNames = [...]string{
	TypeUnknown: "unknown",
	TypeNull:    "null",
	TypeBoolean: "boolean",
	TypeInteger: "integer",
	TypeNumber:  "number",
	TypeString:  "string",
	TypeArray:   "array",
	TypeObject:  "object",
}

// String returns the JSON Schema name of the type ("integer", "object", ...).
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[TypeUnknown]
	}
	return typeNames[t]
}

// ParseType maps a JSON Schema type name back to a Type. Unrecognized names
// yield TypeUnknown and false.
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), Type(i) != TypeUnknown
		}
	}
	return TypeUnknown, false
}
