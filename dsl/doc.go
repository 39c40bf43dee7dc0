// Package dsl provides the built-in adapters of jsonadapt and the builder for
// composite object types.
//
// Overview
//   - Primitives: Bool(), Int[T](), Uint[T](), Float[T](), String[T]() for every kind with the matching underlying type.
//   - Containers: Array(elem), Map(elem) (uniform-value maps), Optional(inner) (pointers; nil omits the key).
//   - Enumerations: Enum(EnumValue(name, v)...) serialized by name.
//   - Unions: Union(Case[Shape, Circle](...), ...) for interface types, VariantOf for tagged structs.
//   - Raw(): pass-through of value.Value with the wildcard schema.
//   - Objects: Object[T](title, Field(...), Accessor(...), Computed(...)) builds an ObjectInfo[T].
//
// Options
//
// Every property constructor takes an ordered list of Options (Title,
// Description, Required, ReadOnly, WriteOnly, Minimum, Maximum, MinItems,
// MaxItems, Default, DefaultOf). They are folded onto a zero PropertyOptions;
// a default always makes the property optional.
//
// Semantics
//   - Schema: the property's adapter schema overlaid with the options that were set.
//   - Serialize: write-only properties are skipped, absent results omitted; failures are reported as Issues.
//   - Deserialize: read-only properties are skipped; an absent property takes its default or keeps its value.
//
// Example
//
//	type Shape interface{ Area() float64 }
//
//	type Circle struct{ R float64 }
//	type Square struct{ Side float64 }
//
//	var circle = dsl.Object[Circle]("Circle",
//	    dsl.Field("r", func(c *Circle) *float64 { return &c.R }, dsl.Float[float64](), dsl.Required(), dsl.Minimum(0)),
//	)
//	var square = dsl.Object[Square]("Square",
//	    dsl.Field("side", func(s *Square) *float64 { return &s.Side }, dsl.Float[float64](), dsl.Required()),
//	)
//
//	type Scene struct {
//	    Name   string
//	    Shapes []Shape
//	    Tags   map[string]string
//	}
//
//	var scene = dsl.Object[Scene]("Scene",
//	    dsl.Field("name", func(s *Scene) *string { return &s.Name }, dsl.String[string](), dsl.Required()),
//	    dsl.Field("shapes", func(s *Scene) *[]Shape { return &s.Shapes },
//	        dsl.Array(dsl.Union(dsl.Case[Shape, Circle](circle), dsl.Case[Shape, Square](square))), dsl.MaxItems(16)),
//	    dsl.Field("tags", func(s *Scene) *map[string]string { return &s.Tags }, dsl.Map(dsl.String[string]())),
//	)
//
// The ObjectInfo values are built once at start-up and are safe for
// concurrent use afterwards.
package dsl
