package mpv

import "strings"

// buildCommand joins name and args with single spaces into a NUL-terminated
// buffer for mpv_command_string. Tokens are not escaped or validated; libmpv
// parses the result with its input.conf grammar.
func buildCommand(name string, args []string) ([]byte, error) {
	size := len(name) + 1
	for _, arg := range args {
		size += len(arg) + 1
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString(name)
	for _, arg := range args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	return cString(b.String())
}

// Quote wraps s in double quotes so the command parser treats it as a single
// argument. Backslashes, double quotes and newlines are escaped because the
// parser interprets C-style escapes inside double quotes.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
