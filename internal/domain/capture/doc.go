// Package capture turns a URL into a design.Context.
//
// Pipeline renders the page, runs the DOM extractor against the live page,
// analyzes the final HTML snapshot and hands everything to the Compiler,
// which merges the pieces, normalizes the screenshot and applies every
// size cap. Extraction steps that fail are logged and recorded on the
// context; only a render failure aborts a capture.
package capture
