// Package integrity provides health checks of the infrastructure the
// localization feature relies on.
//
// # Checks Provided
//
//   - Storage: Checks that the hand-off bucket and its folders exist.
//   - Schema: Verifies that the records table has every column and the unique index on the key.
//   - Records: Validates the stored records of every application (duplicate keys, missing fields, missing ids).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs storage check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
//   - GET /integrity/records : Runs records check.
package integrity
