// Package openai provides an ai.Embedder backed by OpenAI-compatible
// embedding APIs (Ollama, LocalAI, vLLM, OpenAI itself) via langchaingo.
package openai
