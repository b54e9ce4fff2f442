/*
Package browser renders live pages in headless Chrome.

# Overview

The clone pipeline needs what a visitor's browser sees after scripts have
run: the final DOM, computed styles, geometry and a screenshot. Renderer
hides the automation engine behind two small interfaces so the rest of the
pipeline (and its tests) never import go-rod.

# Rendering

RodRenderer launches a local headless Chrome on first use, or connects to
an external one when Config.RemoteURL is set. Each Render call:

 1. opens a fresh tab, with stealth evasions unless disabled
 2. navigates and waits for the load event and network idle
 3. captures a full-page PNG screenshot and the serialized DOM
 4. returns a Page that stays open for in-page evaluation

The caller owns the Page and must Close it.

# Errors

A render that does not settle within its timeout fails with
ErrRenderTimeout. Any other navigation failure wraps ErrRender.

# Evaluation

Page.Evaluate runs a function expression in the page and returns its string
result. Extraction scripts serialize with JSON.stringify so the Go side
decodes one well-defined shape.
*/
package browser
