// Package lints implements the HTML checks: a regex tag scanner over a
// masked copy of the document, a stack-based structure validator, and the
// doctype, duplicate id and element name checks.
package lints
