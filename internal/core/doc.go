// Package core provides the business logic for reconciling position records
// between two HR spreadsheet exports.
//
// The package is independent of any transport. Web handlers, the CLI and
// tests all drive it through the same entry points.
//
// # Sources
//
// Source A is the learning/talent system export. Its files start with a
// variable number of banner rows (report title, generation date, filters), so
// the header row is found structurally with [LocateHeader]. Source B is the
// HR/payroll export with its header on the first row.
//
// # Pipeline
//
// [Reconcile] runs one reconciliation end to end over two raw grids:
//
//  1. Locate Source A's header row and build both tables; every header cell
//     goes through [NormalizeColumn].
//  2. Check the required columns of each source ([MissingColumnError]).
//  3. Extract records: identifiers via [NormalizeID], position codes via
//     [PositionCodeA] and [PositionCodeB]. Rows without an identifier drop out.
//  4. Build the [ExclusionSet] (invalid prefixes plus the status marker rule
//     learned from Source B) and apply it to both sources.
//  5. Collapse duplicate identifiers, first occurrence wins ([Dedupe]).
//  6. [Compare] the two record sets into the four result sets.
//
// The run either produces a complete [Result] or an error; there is no
// partial output.
//
// # Profiles
//
// Column names, identifier digit threshold, invalid prefixes and the status
// rule differ between companies. They are grouped in [Settings] and shipped
// as named profiles registered with [RegisterProfile]; configuration may
// override any field of the selected profile.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]. Each
// category has a code for support reference:
//
//   - HDR001: header row not found in Source A
//   - VAL004: required column missing
//   - FILE001-FILE005: upload problems (size, format, encoding, empty)
//   - UPL002-UPL005: run capacity, expired runs, cancellation
package core
