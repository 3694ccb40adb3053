// Package spdx provides a minimal SPDX 2.x document model for comparison.
//
// # Overview
//
// Only the parts of a document that sbomdiff compares are modeled: creation
// info (creators), files, packages (for resolving relationship targets),
// annotations, relationships, external document references and extracted
// licensing info. Unknown fields are ignored when decoding.
//
// # Loading
//
// Documents are decoded by their serialization libraries straight into the
// model; there is no hand-written parser. [ReadJSON] decodes SPDX JSON,
// [ReadYAML] decodes SPDX YAML, and [Load] picks one by file extension:
//
//	doc, err := spdx.Load("app.spdx.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Tag-value and RDF serializations are not supported.
//
// # Equivalence
//
// Comparison needs to know when two records from different documents carry
// the same value even though their SPDX identifiers differ. [Element.Equivalent],
// [Annotation.Equivalent], [EqualChecksums] and [EqualStringSets] provide
// those checks. Checks that can encounter malformed data return an error
// with code INVALID_DOCUMENT instead of guessing.
package spdx
