/*
Package toon reads and writes a compact, indentation-based text encoding of
structured values, designed to keep token counts low when the text is fed
to a language model while staying readable and unambiguous to parse.

A document holds a single Value: Null, Bool, Number, String, List or *Map.
Maps are written one "key: value" per line, with nested maps and lists
indented one level below the line that introduces them:

	user:
	  name: Ada
	  tags[2]:
	    - math
	    - engines

A list of maps that share the same keys in the same order, with only scalar
values, is written as a table: a header naming the row count and fields,
followed by one comma-separated row per element:

	annotations[2]{id,label}
	  1,tiger
	  2,elephant

Strings are written bare unless they would read back as something else
(a number, true, false, null, or text containing structural characters), in
which case they are double-quoted with backslash escapes.

Encode never fails. Decode rejects malformed input with a *DecodeError
carrying the line, column and kind of the problem; it never guesses.

Both are safe for concurrent use: neither holds state between calls.
*/
package toon
