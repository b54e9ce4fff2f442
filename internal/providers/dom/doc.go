// Package dom extracts computed-style, color, font, geometry and stylesheet
// facts from a rendered page by evaluating bounded scripts inside it.
//
// Each step is an independent script whose output is capped in-page and
// again by design.Bound. A step that fails (script throws, bad JSON,
// evaluation timeout) is recorded as a StepFailure; the others still run.
package dom
