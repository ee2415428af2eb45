package gumtree

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/gumtree/pkg/gumtree/schema"
)

// ParseFile reads and parses an input tree document from path, per
// SPEC_FULL.md §6's input JSON shape. Grounded on the validate-then-decode
// convention of the reference codebase's cmd/uast/validate.go.
func ParseFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gumtree: read %s: %w", path, err)
	}

	tree, err := ParseTree(data)
	if err != nil {
		return nil, fmt.Errorf("gumtree: parse %s: %w", path, err)
	}

	return tree, nil
}

// ParseTree validates data against the embedded input schema (component I),
// then decodes it into a Tree (component A).
func ParseTree(data []byte) (*Tree, error) {
	var generic any
	if jsonErr := json.Unmarshal(data, &generic); jsonErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, jsonErr)
	}

	if err := validateAgainstSchema(generic); err != nil {
		return nil, err
	}

	var raw RawTree
	if jsonErr := json.Unmarshal(data, &raw); jsonErr != nil {
		return nil, fmt.Errorf("gumtree: decode input document: %w", jsonErr)
	}

	return BuildTree(&raw)
}

func validateAgainstSchema(doc any) error {
	schemaBytes, err := schema.InputSchemaFS.ReadFile("input-schema.json")
	if err != nil {
		return fmt.Errorf("gumtree: read embedded schema: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	docLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}

	return fmt.Errorf("%w: %s", ErrSchemaValidation, strings.Join(msgs, "; "))
}
