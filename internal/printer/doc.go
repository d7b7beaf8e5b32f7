// Package printer renders accepted models.
//
// Every printer implements partial.Sink: Comment is called once before each
// model and Algebra once per model. Printers write through to their
// io.Writer and report the first write error, which stops the search.
//
//   - TextPrinter: human-readable tables, Cayley tables for binary symbols.
//   - JSONPrinter: one canonical JSON object per line, stable byte for byte
//     across runs so output can be diffed and snapshotted.
//   - Counter: counts models and discards them.
package printer
