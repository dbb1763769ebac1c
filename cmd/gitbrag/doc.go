// Gitbrag turns local git history into review documents.
//
// It scans a directory tree for repositories, collects the commits matching
// an author and date window, classifies each commit with an LLM provider
// (Gemini, OpenAI, or Anthropic), and writes brag, summary, CV, and
// performance-review documents in Markdown. With --no-llm, or whenever the
// provider fails, every stage degrades to a deterministic offline
// aggregation so a usable summary is always produced.
//
// Usage:
//
//	gitbrag generate --author "Ada" --since "6 months ago"   # full run
//	gitbrag generate --no-llm --author ada@example.com       # offline run
//	gitbrag repos --dir ~/src                                # preview discovery
//	gitbrag config init                                      # write default config
//	gitbrag models list                                      # provider/key status
package main
