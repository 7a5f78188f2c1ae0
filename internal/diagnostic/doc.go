// Package diagnostic provides structured warnings and errors reported while
// extracting struct declarations and synthesizing builders.
//
// Error diagnostics abort generation for the whole run; warnings are logged
// and generation continues.
package diagnostic
