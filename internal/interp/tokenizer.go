package interp

import (
	"regexp"
	"strings"
)

var (
	// commandRe extracts the command word: the leading run of word
	// characters after optional whitespace.
	commandRe = regexp.MustCompile(`^\s*(\w+)`)

	// argPairRe matches one key=value token. The value is double-quoted,
	// single-quoted (no escaping of embedded quotes), or a run of
	// non-whitespace characters. Whitespace around = is tolerated.
	argPairRe = regexp.MustCompile(`(\w+)\s*=\s*(?:"([^"]*)"|'([^']*)'|(\S+))`)
)

// splitCommand separates the command word from the argument segment.
func splitCommand(line string) (cmd, rest string, err error) {
	m := commandRe.FindStringSubmatchIndex(line)
	if m == nil {
		return "", "", errKind(KindInvalidArgument)
	}
	cmd = line[m[2]:m[3]]
	rest = strings.TrimSpace(line[m[1]:])
	return cmd, rest, nil
}

// tokenizeArgs extracts the key=value pairs from the argument segment and
// returns the raw (unquoted) values. Pairs are scanned left to right; if
// the same key appears more than once, the last occurrence wins. Any
// non-whitespace text remaining after the final recognized pair fails with
// InvalidArgument.
func tokenizeArgs(segment string) (map[string]string, error) {
	args := map[string]string{}
	end := 0
	for _, m := range argPairRe.FindAllStringSubmatchIndex(segment, -1) {
		key := segment[m[2]:m[3]]
		args[key] = groupValue(segment, m)
		end = m[1]
	}
	if strings.TrimSpace(segment[end:]) != "" {
		return nil, errKind(KindInvalidArgument)
	}
	return args, nil
}

// groupValue picks the populated value group of an argPairRe match:
// double-quoted, single-quoted, or bare.
func groupValue(segment string, m []int) string {
	for _, g := range []int{2, 3, 4} {
		if m[2*g] >= 0 {
			return segment[m[2*g]:m[2*g+1]]
		}
	}
	return ""
}
