// Package pkg provides the core libraries for sbomdiff SPDX document comparison.
//
// # Overview
//
// sbomdiff lines up the records of two or more SPDX documents by key and
// reports, category by category, which records are present where and
// whether they agree. The pkg directory is organized around that flow:
//
//  1. [spdx] - Document model and JSON/YAML loading
//  2. [align] - N-way alignment of sorted sequences
//  3. [compare] - Categories, keys, equality and the report model
//  4. [render] - Cell text for each category
//  5. [sink] - Report output (xlsx, json, text)
//  6. [pipeline] - Orchestration (load → compare → export) with caching
//
// # Architecture
//
// The typical data flow through sbomdiff:
//
//	SPDX documents (JSON/YAML)
//	         ↓
//	    [spdx] package (decode documents)
//	         ↓
//	    [compare] package (sort by key, align, check equality)
//	         ↓
//	    [sink] package (render report)
//	         ↓
//	    XLSX/JSON/text output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/sbomdiff/pkg/compare"
//	    "github.com/matzehuels/sbomdiff/pkg/sink"
//	    "github.com/matzehuels/sbomdiff/pkg/spdx"
//	)
//
//	// 1. Load documents
//	old, _ := spdx.Load("app-1.0.spdx.json")
//	cur, _ := spdx.Load("app-1.1.spdx.yaml")
//
//	// 2. Compare
//	report, _ := compare.Compare(ctx, []string{"1.0", "1.1"},
//	    []*spdx.Document{old, cur}, compare.Options{})
//
//	// 3. Render
//	data, _ := sink.RenderXLSX(report, sink.WithOnlyDifferences())
//
// The [pipeline] package wraps these steps with validation, hooks and a
// content-addressed report cache; the CLI and HTTP server are built on it.
//
// # Supporting Packages
//
//   - [cache] - Report cache backends (file, Redis, null) and key derivation
//   - [errors] - Coded errors shared by the CLI and server
//   - [observability] - Pipeline, cache and server hooks
//   - [server] - HTTP API for comparisons
//   - [buildinfo] - Version information
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/align/...      # Specific package
//	go test -run Example ./...   # Examples only
//
// [spdx]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/spdx
// [align]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/align
// [compare]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/compare
// [render]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/render
// [sink]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/server
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sbomdiff/pkg/buildinfo
package pkg
