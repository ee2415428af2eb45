package gumtree

import "errors"

// Sentinel errors for the taxonomy in SPEC_FULL.md §7.
var (
	// ErrMissingRoot is returned when an input document has no "root" field.
	ErrMissingRoot = errors.New("gumtree: input document has no root node")
	// ErrInvalidChildren is returned when a node's "children" field is not a list.
	ErrInvalidChildren = errors.New("gumtree: node children must be a list")
	// ErrInvalidOffset is returned when "begin"/"end" are not non-negative integers.
	ErrInvalidOffset = errors.New("gumtree: begin/end must be non-negative integers")
	// ErrSchemaValidation is returned when the input document fails schema validation.
	ErrSchemaValidation = errors.New("gumtree: input document failed schema validation")

	// ErrUnmappedParent is an assertion failure: an Insert's parent was not mapped.
	ErrUnmappedParent = errors.New("gumtree: assertion failed: insert target has no mapped parent")
	// ErrInconsistentMapping is an assertion failure: the mapping violated the partial-bijection invariant.
	ErrInconsistentMapping = errors.New("gumtree: assertion failed: mapping is not a partial bijection")

	// ErrUnknownAction is returned by the text encoder for an Action with an unrecognized Kind.
	ErrUnknownAction = errors.New("gumtree: unknown action")
	// ErrUnsupportedOutputFormat is returned when an unsupported output format is requested.
	ErrUnsupportedOutputFormat = errors.New("gumtree: unsupported output format")
)
