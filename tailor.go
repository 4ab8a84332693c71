// Package tailor provides resume tailoring: best-effort readable-text
// extraction from uploaded document blobs, and analysis of the extracted
// text against a job description by a remote or model-backed analyzer.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, jsonschema/).
package tailor
