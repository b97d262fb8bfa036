// Package tags converts free-text tag input, as typed into a tagging or
// autocomplete widget, into an ordered list of distinct tags, and back.
//
// The accepted grammar is a comma separated list of fields. A field is either
// unquoted (it runs up to the next comma) or wrapped in double quotes, in which
// case it may contain commas and a doubled quote ("") stands for one literal
// quote character:
//
//	this, "somecompany, llc", "and ""this"" w,o.rks", foo bar
//
// Parse never fails. Malformed input stops the scan at the first problem and
// the tags read up to that point are returned together with one diagnostic
// describing the problem. Join is the inverse for well-formed tag lists: for any
// list of distinct, non-blank, already trimmed tags, Parse(Join(tags)).Tags
// equals tags.
//
// All functions are pure and safe for concurrent use.
package tags
