// Package heuristic implements best-effort readable-text extraction from
// opaque document blobs without parsing the document's internal structure.
//
// The input bytes are decoded lossily as UTF-8 and passed through an ordered
// chain of strategies. Each strategy has its own quality gate; the first one
// that passes wins. When none pass, the fallback placeholder is returned, so
// extraction never fails and never yields an empty string.
package heuristic
