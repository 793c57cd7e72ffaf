// Package doctor diagnoses the environment the dashboard depends on.
//
// Checks are grouped into categories:
//
//   - [CategoryEnvironment]: git availability
//   - [CategoryRoot]: the scanned root directory
//   - [CategoryStatic]: the directory serving the dashboard page
//   - [CategoryRepo]: repositories whose status cannot be determined or
//     whose current branch has no upstream
//
// Nothing is repaired; each [Issue] carries a hint for the user.
package doctor
