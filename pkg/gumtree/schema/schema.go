// Package schema embeds the JSON Schema that validates the external
// parser's input tree documents, following the reference codebase's
// embed-schema-then-gojsonschema.Validate convention (pkg/uast/pkg/spec).
package schema

import "embed"

//go:embed input-schema.json
var InputSchemaFS embed.FS
