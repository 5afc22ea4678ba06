// Package schema validates jsonkit values against JSON-Schema documents of
// the draft-4 era.
//
// Supported keywords:
//
//   - composition: allOf, anyOf, oneOf, not, enum
//   - type (a name or an array of names) and $ref (only consulted when type is absent)
//   - array: items (schema or tuple), additionalItems, maxItems, minItems, uniqueItems
//   - integer/number: multipleOf, maximum, exclusiveMaximum, minimum, exclusiveMinimum;
//     integer only accepts numbers without a fractional part, so 3.5 is not an integer
//   - string: maxLength, minLength (bytes), pattern (ECMAScript syntax, full match)
//   - object: maxProperties, minProperties, required, properties, patternProperties, additionalProperties
//   - format: date-time, email, hostname, ipv4, ipv6, uri, plus formats added with WithFormat
//
// Validation is fail-fast. The first violated constraint is returned as a
// *ValidationError whose message embeds the canonical dump of the offending
// data; a schema that cannot be applied yields a *SchemaError instead.
//
//	err := schema.Validate(data, sch)
//	if ve, ok := schema.AsValidationError(err); ok {
//		log.Printf("%s at %q", ve.Message, ve.Path)
//	}
//
// $ref values are slash-separated member paths into the root schema, such as
// "#" or "#/definitions/node"; definitions may refer to themselves.
package schema
