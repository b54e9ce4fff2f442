// Package generation turns a compiled design context into an HTML document
// through an external language model.
//
// The Adapter flattens and bounds the context into a prompt, dispatches it
// to the selected Provider and cleans the raw reply into a loadable
// document. Providers:
//   - AnthropicProvider: Messages API over the shared resty client
//   - GeminiProvider: google.golang.org/genai
//
// Example Usage:
//
//	adapter := generation.NewAdapter(generation.Options{Default: "claude"}, logger, metrics)
//	adapter.Register("claude", anthropic)
//	result, err := adapter.Generate(ctx, designCtx, "gemini")
package generation
