// Package writers turns clones into serialized outputs.
//
// Every format is an export.Sink registered by name. Sinks buffer their
// output, write a header at most once, and flush on Close. JSONL rows go
// through pkg/api for a stable wire format.
package writers
