// Package writers turns a finished run into serialized output.
//
// Design:
//   - Writers own all presentation knowledge (text lines, JSON, JSONL).
//   - The pipeline stays orchestration-only; consensus stays domain-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
