// Package ai defines the text-embedding abstraction used by the matching
// engine. The Embedder interface is implemented by provider subpackages:
// openai for real OpenAI-compatible services and mock for tests.
package ai
