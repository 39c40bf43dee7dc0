// Package jsonadapt provides:
//
// - Adapters that map native Go types to and from a generic JSON value (value.Value)
// - JSON-Schema-like descriptions of those types (jsonschema.Schema) generated from the same declarations
// - A validator producing a complete, path-qualified list of Issues
// - A small façade (Stringify/Parse/Serialize/Deserialize/GetSchema) tying them together
//
// Design policy:
// - Keep only public APIs in the root package; put token plumbing under internal/.
// - Place built-in adapters and the object builder under dsl/, string-carried types
//   (time, duration, text) under codec/, the HTTP binding under middleware/, and the CLI
//   under cmd/jsonadapt.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	var PointAdapter = dsl.Object[Point]("Point",
//	    dsl.Field("x", func(p *Point) *float64 { return &p.X }, dsl.Float[float64](), dsl.Required()),
//	    dsl.Field("y", func(p *Point) *float64 { return &p.Y }, dsl.Float[float64](), dsl.Default(value.Int(0))),
//	)
//
//	text, err := jsonadapt.StringifyObject(PointAdapter, p)
//	p2, err := jsonadapt.ParseAndValidate(PointAdapter, text)
//	issues := jsonadapt.Validate(v, jsonadapt.GetSchema(PointAdapter, nil))
package jsonadapt
