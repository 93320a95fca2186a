package probe

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// number is a numeric literal kept in its Python str() form.
type number string

type tokKind int

const (
	tokName tokKind = iota
	tokNumber
	tokString
	tokOp
)

type token struct {
	kind   tokKind
	text   string
	prefix string // string literals only, lower-cased
}

// logicalLine is one Python statement with the indentation of its first token.
type logicalLine struct {
	indent int
	toks   []token
}

var twoCharOps = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "->": true, ":=": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "&=": true,
	"|=": true, "^=": true, "**": true, "//": true, "<<": true, ">>": true,
}

// tokenize splits Python source into logical lines. It understands enough
// of the lexical grammar to keep brackets, continuations and strings intact;
// everything else comes out as single-character operators.
func tokenize(src string) ([]logicalLine, error) {
	var (
		lines       []logicalLine
		cur         logicalLine
		depth       int
		atLineStart = true
	)
	flush := func() {
		if len(cur.toks) > 0 {
			lines = append(lines, cur)
		}
		cur = logicalLine{indent: cur.indent}
	}

	i := 0
	for i < len(src) {
		if atLineStart && depth == 0 {
			indent := 0
			for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\f') {
				if src[i] == '\t' {
					indent += 8 - indent%8
				} else {
					indent++
				}
				i++
			}
			if i >= len(src) {
				break
			}
			if src[i] == '\n' || src[i] == '\r' || src[i] == '#' {
				for i < len(src) && src[i] != '\n' {
					i++
				}
				i++
				continue
			}
			cur = logicalLine{indent: indent}
			atLineStart = false
		}

		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\f' || c == '\r':
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '\\' && i+1 < len(src) && (src[i+1] == '\n' || src[i+1] == '\r'):
			i += 2
			if i < len(src) && src[i-1] == '\r' && src[i] == '\n' {
				i++
			}
		case c == '\n':
			i++
			if depth == 0 {
				flush()
				atLineStart = true
			}
		case c == ';' && depth == 0:
			i++
			flush()
		case c == '"' || c == '\'':
			tok, n, err := scanString(src[i:], "")
			if err != nil {
				return nil, err
			}
			cur.toks = append(cur.toks, tok)
			i += n
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			n := scanNumber(src[i:])
			cur.toks = append(cur.toks, token{kind: tokNumber, text: src[i : i+n]})
			i += n
		case c == '_' || c >= utf8.RuneSelf || unicode.IsLetter(rune(c)):
			n := scanName(src[i:])
			if n == 0 {
				_, size := utf8.DecodeRuneInString(src[i:])
				cur.toks = append(cur.toks, token{kind: tokOp, text: src[i : i+size]})
				i += size
				continue
			}
			word := src[i : i+n]
			if i+n < len(src) && (src[i+n] == '"' || src[i+n] == '\'') && isStringPrefix(word) {
				tok, m, err := scanString(src[i+n:], strings.ToLower(word))
				if err != nil {
					return nil, err
				}
				cur.toks = append(cur.toks, tok)
				i += n + m
				continue
			}
			cur.toks = append(cur.toks, token{kind: tokName, text: word})
			i += n
		default:
			switch c {
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				if depth > 0 {
					depth--
				}
			}
			if i+1 < len(src) && twoCharOps[src[i:i+2]] {
				cur.toks = append(cur.toks, token{kind: tokOp, text: src[i : i+2]})
				i += 2
				continue
			}
			cur.toks = append(cur.toks, token{kind: tokOp, text: string(c)})
			i++
		}
	}
	flush()
	return lines, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isStringPrefix(word string) bool {
	switch strings.ToLower(word) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf":
		return true
	}
	return false
}

func scanName(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if r != '_' && !unicode.IsLetter(r) && !(n > 0 && unicode.IsDigit(r)) {
			break
		}
		n += size
	}
	return n
}

func scanNumber(s string) int {
	hex := len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
	n := 0
	for n < len(s) {
		c := s[n]
		switch {
		case isDigit(c) || c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			n++
		case (c == '+' || c == '-') && !hex && n > 0 && (s[n-1] == 'e' || s[n-1] == 'E'):
			n++
		default:
			return n
		}
	}
	return n
}

// scanString reads a quoted literal starting at s[0] and returns the token
// and the number of bytes consumed.
func scanString(s, prefix string) (token, int, error) {
	q := s[0]
	triple := len(s) >= 3 && s[1] == q && s[2] == q
	start := 1
	if triple {
		start = 3
	}
	for i := start; i < len(s); i++ {
		switch {
		case s[i] == '\\':
			i++
		case !triple && s[i] == '\n':
			return token{}, 0, fmt.Errorf("unterminated string literal")
		case s[i] == q:
			if !triple {
				return token{kind: tokString, text: s[start:i], prefix: prefix}, i + 1, nil
			}
			if i+2 < len(s) && s[i+1] == q && s[i+2] == q {
				return token{kind: tokString, text: s[start:i], prefix: prefix}, i + 3, nil
			}
		}
	}
	return token{}, 0, fmt.Errorf("unterminated string literal")
}

// parseSource returns the attributes a module would define from top-level
// literal assignments and trivial functions, without running any of it.
func parseSource(src string) (Attrs, error) {
	lines, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	attrs := Attrs{}
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line.indent != 0 {
			continue
		}
		if isKeyword(line.toks[0], "def") {
			name, body, ok := parseDef(line.toks)
			if !ok {
				continue
			}
			if len(body) == 0 {
				// Body on the following indented lines.
				var block [][]token
				for i+1 < len(lines) && lines[i+1].indent > 0 {
					i++
					block = append(block, lines[i].toks)
				}
				body = firstStatement(block)
			}
			attrs[name] = makeCallable(body, attrs)
			continue
		}
		parseAssignment(line.toks, attrs)
	}
	return attrs, nil
}

func isKeyword(t token, word string) bool {
	return t.kind == tokName && t.text == word
}

func isOp(t token, op string) bool {
	return t.kind == tokOp && t.text == op
}

// parseDef matches "def NAME ( ) [-> ann] :" and returns the tokens after
// the colon, which hold the body when it is on the same line.
func parseDef(toks []token) (string, []token, bool) {
	if len(toks) < 5 || toks[1].kind != tokName || !isOp(toks[2], "(") || !isOp(toks[3], ")") {
		return "", nil, false
	}
	for j := 4; j < len(toks); j++ {
		if isOp(toks[j], ":") {
			return toks[1].text, toks[j+1:], true
		}
	}
	return "", nil, false
}

// firstStatement skips a leading docstring.
func firstStatement(block [][]token) []token {
	for _, stmt := range block {
		if len(stmt) > 0 && allStrings(stmt) {
			continue
		}
		return stmt
	}
	return nil
}

func allStrings(toks []token) bool {
	for _, t := range toks {
		if t.kind != tokString {
			return false
		}
	}
	return true
}

func makeCallable(body []token, env Attrs) Callable {
	return func() (any, error) {
		if len(body) < 2 || !isKeyword(body[0], "return") {
			return nil, ErrNotStatic
		}
		return evalLiteral(body[1:], env)
	}
}

// parseAssignment records "a = b = literal" and "a: T = literal". Targets
// bound to anything else are forgotten.
func parseAssignment(toks []token, attrs Attrs) {
	var segments [][]token
	depth, last := 0, 0
	for j, t := range toks {
		if t.kind == tokOp {
			switch t.text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			case "=":
				if depth == 0 {
					segments = append(segments, toks[last:j])
					last = j + 1
				}
			}
		}
	}
	if len(segments) == 0 {
		return
	}
	value := toks[last:]

	var targets []string
	for _, seg := range segments {
		switch {
		case len(seg) == 1 && seg[0].kind == tokName:
			targets = append(targets, seg[0].text)
		case len(seg) >= 3 && seg[0].kind == tokName && isOp(seg[1], ":") && len(segments) == 1:
			targets = append(targets, seg[0].text)
		default:
			return
		}
	}

	v, err := evalLiteral(value, attrs)
	for _, name := range targets {
		if err != nil {
			delete(attrs, name)
			continue
		}
		attrs[name] = v
	}
}

// evalLiteral evaluates a literal expression: strings, numbers, booleans,
// None, names bound earlier, and tuples or lists of those.
func evalLiteral(toks []token, env Attrs) (any, error) {
	p := &literalParser{toks: toks, env: env}
	v, _, err := p.exprList()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, ErrNotStatic
	}
	return v, nil
}

type literalParser struct {
	toks []token
	pos  int
	env  Attrs
}

func (p *literalParser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

// exprList parses "a, b, c" as a tuple and a lone "a" as itself. The flag
// reports whether a tuple was built.
func (p *literalParser) exprList() (any, bool, error) {
	first, err := p.atom()
	if err != nil {
		return nil, false, err
	}
	t, ok := p.peek()
	if !ok || !isOp(t, ",") {
		return first, false, nil
	}
	items := []any{first}
	for {
		t, ok := p.peek()
		if !ok || !isOp(t, ",") {
			return items, true, nil
		}
		p.pos++
		if t, ok := p.peek(); !ok || isOp(t, ")") || isOp(t, "]") {
			return items, true, nil
		}
		v, err := p.atom()
		if err != nil {
			return nil, false, err
		}
		items = append(items, v)
	}
}

func (p *literalParser) atom() (any, error) {
	t, ok := p.peek()
	if !ok {
		return nil, ErrNotStatic
	}
	switch t.kind {
	case tokString:
		var b strings.Builder
		for ok && t.kind == tokString {
			s, err := decodeString(t)
			if err != nil {
				return nil, err
			}
			b.WriteString(s)
			p.pos++
			t, ok = p.peek()
		}
		return b.String(), nil
	case tokNumber:
		p.pos++
		return normalizeNumber(t.text), nil
	case tokName:
		p.pos++
		switch t.text {
		case "True":
			return true, nil
		case "False":
			return false, nil
		case "None":
			return nil, nil
		}
		if v, ok := p.env[t.text]; ok {
			if _, isCall := v.(Callable); !isCall {
				return v, nil
			}
		}
		return nil, ErrNotStatic
	case tokOp:
		switch t.text {
		case "-", "+":
			p.pos++
			n, ok := p.peek()
			if !ok || n.kind != tokNumber {
				return nil, ErrNotStatic
			}
			p.pos++
			s := string(normalizeNumber(n.text))
			if t.text == "-" {
				s = "-" + s
			}
			return number(s), nil
		case "(", "[":
			closer := ")"
			if t.text == "[" {
				closer = "]"
			}
			p.pos++
			if n, ok := p.peek(); ok && isOp(n, closer) {
				p.pos++
				return []any{}, nil
			}
			v, tuple, err := p.exprList()
			if err != nil {
				return nil, err
			}
			n, ok := p.peek()
			if !ok || !isOp(n, closer) {
				return nil, ErrNotStatic
			}
			p.pos++
			if !tuple && closer == "]" {
				v = []any{v}
			}
			return v, nil
		}
	}
	return nil, ErrNotStatic
}

// normalizeNumber renders integer literals in decimal. Other numeric
// literals keep their source text.
func normalizeNumber(text string) number {
	clean := strings.ReplaceAll(text, "_", "")
	lower := strings.ToLower(clean)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		if n, err := strconv.ParseInt(clean, 0, 64); err == nil {
			return number(strconv.FormatInt(n, 10))
		}
		return number(text)
	}
	if !strings.ContainsAny(lower, ".ej") {
		if n, err := strconv.ParseInt(clean, 10, 64); err == nil {
			return number(strconv.FormatInt(n, 10))
		}
	}
	return number(clean)
}

func decodeString(t token) (string, error) {
	if strings.Contains(t.prefix, "f") {
		return "", ErrNotStatic
	}
	if strings.Contains(t.prefix, "r") {
		return t.text, nil
	}
	return unescape(t.text), nil
}

// unescape interprets Python backslash escapes.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			if i+width <= len(s)-1 {
				if r, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += width
					continue
				}
			}
			b.WriteByte('\\')
			b.WriteByte(e)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			r, _ := strconv.ParseUint(s[i:j], 8, 32)
			b.WriteRune(rune(r))
			i = j - 1
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}
