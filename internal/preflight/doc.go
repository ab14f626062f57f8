// Package preflight provides readiness checks for the Telestream Cloud API
// and the local files tcloud depends on.
//
// These checks run in two contexts:
//   - The CLI "tcloud status" command calls RunAll to display health.
//   - The "tcloud upload" command calls CheckUploadSource before opening an
//     upload session, so an unreadable file never reaches the API.
package preflight
