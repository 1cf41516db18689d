package tree

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
)

// declaration is a property declaration, whose values
// are stripped from white spaces and comments.
type declaration struct {
	name   string
	values []css.Token
}

func (d declaration) String() string {
	return fmt.Sprintf("%s: %s", d.name, serialize(d.values))
}

func serialize(tokens []css.Token) string {
	chunks := make([]string, len(tokens))
	for i, t := range tokens {
		chunks[i] = string(t.Data)
	}
	return strings.Join(chunks, " ")
}

// compound is a compound selector, like div.a#b
type compound struct {
	tag     string // empty for the universal selector
	id      string
	classes []string
	// child is true if the relation to the previous
	// compound is the child combinator
	child bool
}

func (c compound) matches(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && c.tag != node.Data {
		return false
	}
	if c.id != "" && c.id != attribute(node, "id") {
		return false
	}
	if len(c.classes) != 0 {
		classes := strings.Fields(attribute(node, "class"))
		for _, class := range c.classes {
			if !contains(classes, class) {
				return false
			}
		}
	}
	return true
}

// selector is a chain of compound selectors, whose last element
// is the subject.
type selector []compound

// specificity returns the usual (ids, classes, types) triplet,
// encoded in one integer.
func (s selector) specificity() int {
	var ids, classes, types int
	for _, c := range s {
		if c.id != "" {
			ids++
		}
		classes += len(c.classes)
		if c.tag != "" {
			types++
		}
	}
	return ids<<16 | classes<<8 | types
}

func (s selector) matches(node *html.Node) bool {
	if len(s) == 0 || !s[len(s)-1].matches(node) {
		return false
	}
	return s.matchesAncestors(len(s)-1, node)
}

// matchesAncestors checks s[:index] against the ancestors of node,
// knowing that node matches s[index].
func (s selector) matchesAncestors(index int, node *html.Node) bool {
	if index == 0 {
		return true
	}
	for parent := node.Parent; parent != nil; parent = parent.Parent {
		if s[index-1].matches(parent) && s.matchesAncestors(index-1, parent) {
			return true
		}
		if s[index].child {
			return false
		}
	}
	return false
}

// parseSelector supports type, class and id selectors,
// with the descendant and child combinators.
func parseSelector(input string) (selector, error) {
	input = strings.ReplaceAll(input, ">", " > ")
	var (
		out   selector
		child bool
	)
	for _, chunk := range strings.Fields(input) {
		if chunk == ">" {
			if len(out) == 0 || child {
				return nil, fmt.Errorf("invalid selector %q", input)
			}
			child = true
			continue
		}
		c, err := parseCompound(chunk)
		if err != nil {
			return nil, err
		}
		c.child = child
		child = false
		out = append(out, c)
	}
	if len(out) == 0 || child {
		return nil, fmt.Errorf("invalid selector %q", input)
	}
	return out, nil
}

func parseCompound(chunk string) (compound, error) {
	var out compound
	// split before each '.' or '#'
	start, kind := 0, byte(0)
	flush := func(end int) error {
		name := chunk[start:end]
		if name == "" && !(kind == 0 && end == 0) {
			return fmt.Errorf("invalid selector %q", chunk)
		}
		if strings.ContainsAny(name, ":[]()*+~,") && name != "*" {
			return fmt.Errorf("unsupported selector %q", chunk)
		}
		switch kind {
		case 0:
			if name != "*" {
				out.tag = strings.ToLower(name)
			}
		case '.':
			out.classes = append(out.classes, name)
		case '#':
			out.id = name
		}
		return nil
	}
	for i := 0; i < len(chunk); i++ {
		if c := chunk[i]; c == '.' || c == '#' {
			if err := flush(i); err != nil {
				return out, err
			}
			start, kind = i+1, c
		}
	}
	err := flush(len(chunk))
	return out, err
}

// rule is a style rule with exactly one selector.
type rule struct {
	selector     selector
	declarations []declaration
	// index in the stylesheet, to break specificity ties
	order int
}

// stylesheet is a list of rules and of @page declarations.
type stylesheet struct {
	rules []rule
	page  []declaration
}

// parseStylesheet returns the rules which are understood, and the
// errors encountered (unsupported selectors and at-rules).
func parseStylesheet(content []byte) (stylesheet, error) {
	var (
		out  stylesheet
		errs error
	)
	parser := css.NewParser(parse.NewInput(bytes.NewReader(content)), false)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				errs = multierr.Append(errs, fmt.Errorf("invalid stylesheet: %s", err))
			}
			return out, errs
		case css.BeginAtRuleGrammar:
			if name := strings.ToLower(string(data)); name == "@page" {
				out.page = append(out.page, parseAtRuleDeclarations(parser)...)
			} else {
				skipBlock(parser)
				errs = multierr.Append(errs, fmt.Errorf("unsupported at-rule %s", name))
			}
		case css.AtRuleGrammar:
			errs = multierr.Append(errs, fmt.Errorf("unsupported at-rule %s", data))
		case css.BeginRulesetGrammar:
			selectors := splitSelectors(data, parser.Values())
			declarations := parseRulesetDeclarations(parser)
			for _, input := range selectors {
				sel, err := parseSelector(input)
				if err != nil {
					errs = multierr.Append(errs, err)
					continue
				}
				out.rules = append(out.rules, rule{selector: sel, declarations: declarations, order: len(out.rules)})
			}
		}
	}
}

func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	var out []string
	for _, s := range strings.Split(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func skipBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

func parseRulesetDeclarations(parser *css.Parser) []declaration {
	var out []declaration
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return out
		case css.DeclarationGrammar:
			out = append(out, newDeclaration(data, parser.Values()))
		}
	}
}

func parseAtRuleDeclarations(parser *css.Parser) []declaration {
	var out []declaration
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return out
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			// nested margin boxes
			skipBlock(parser)
		case css.DeclarationGrammar:
			out = append(out, newDeclaration(data, parser.Values()))
		}
	}
}

// parseDeclarations parses the content of a style attribute.
func parseDeclarations(content string) []declaration {
	var out []declaration
	parser := css.NewParser(parse.NewInputString(content), true)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return out
		case css.DeclarationGrammar:
			out = append(out, newDeclaration(data, parser.Values()))
		}
	}
}

func newDeclaration(name []byte, values []css.Token) declaration {
	out := declaration{name: strings.ToLower(string(name))}
	for _, v := range values {
		if v.TokenType == css.WhitespaceToken || v.TokenType == css.CommentToken {
			continue
		}
		// the values are retained after the parser moves on
		out.values = append(out.values, css.Token{TokenType: v.TokenType, Data: append([]byte(nil), v.Data...)})
	}
	// !important has no effect in the fixtures
	if n := len(out.values); n >= 2 && out.values[n-2].TokenType == css.DelimToken &&
		string(out.values[n-2].Data) == "!" && strings.EqualFold(string(out.values[n-1].Data), "important") {
		out.values = out.values[:n-2]
	}
	return out
}

// matchingDeclarations returns the declarations applying to node,
// in cascade order: user agent rules, author rules (by specificity, then
// order), then the style attribute.
func matchingDeclarations(ua, author stylesheet, node *html.Node) []declaration {
	var out []declaration
	for _, sheet := range [2]stylesheet{ua, author} {
		var matching []rule
		for _, r := range sheet.rules {
			if r.selector.matches(node) {
				matching = append(matching, r)
			}
		}
		sort.SliceStable(matching, func(i, j int) bool {
			si, sj := matching[i].selector.specificity(), matching[j].selector.specificity()
			if si != sj {
				return si < sj
			}
			return matching[i].order < matching[j].order
		})
		for _, r := range matching {
			out = append(out, r.declarations...)
		}
	}
	if style, ok := lookupAttribute(node, "style"); ok {
		out = append(out, parseDeclarations(style)...)
	}
	return out
}

func attribute(node *html.Node, key string) string {
	v, _ := lookupAttribute(node, key)
	return v
}

func lookupAttribute(node *html.Node, key string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
