// Package pipeline implements the Markdown-to-HTML rendering pipeline.
//
// One render pass runs these stages in order:
//   - Markdown preprocessing (line ending normalization)
//   - Markdown to HTML conversion, either through the ordered regex rule
//     list (Transformer) or through Goldmark (CommonMarkConverter)
//   - Optional HTML sanitization (bluemonday)
//   - Post-processing on the parsed fragment: unique heading ids, table of
//     contents entries and code block highlighting
//
// The Transformer is intentionally a flat list of substitutions applied to a
// single buffer. Later rules see the HTML produced by earlier ones, so the
// order of DefaultRules is part of the output contract.
package pipeline
