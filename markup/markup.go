// Package markup converts paragraph-level HTML fragments into the two
// renditions the question engine works with: plain text for pattern
// matching and sanitized inline markup for choice bodies.
//
// Every function parses its input into a node tree with golang.org/x/net/html
// and walks the tree, so nested wrappers (a table inside bold, a break
// inside emphasis) are handled structurally rather than by tag regexes.
package markup

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Break is the line-break marker used when joining fragments.
const Break = "<br />"

// blockElements introduce a word boundary in the plain-text rendition.
var blockElements = map[atom.Atom]bool{
	atom.P:     true,
	atom.Div:   true,
	atom.Li:    true,
	atom.Table: true,
	atom.Tr:    true,
	atom.Td:    true,
	atom.Th:    true,
	atom.H1:    true,
	atom.H2:    true,
	atom.H3:    true,
	atom.H4:    true,
	atom.H5:    true,
	atom.H6:    true,
}

// tableElements are flattened to their text content by Inline.
var tableElements = map[atom.Atom]bool{
	atom.Table: true,
	atom.Thead: true,
	atom.Tbody: true,
	atom.Tfoot: true,
	atom.Tr:    true,
	atom.Td:    true,
	atom.Th:    true,
}

// voidElements may legitimately have no children.
var voidElements = map[atom.Atom]bool{
	atom.Br:  true,
	atom.Img: true,
	atom.Hr:  true,
}

// parse parses fragment in a <body> context and returns a synthetic root
// holding the resulting nodes.
func parse(fragment string) *html.Node {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		// ParseFragment only fails on reader errors; fall back to raw text.
		root.AppendChild(&html.Node{Type: html.TextNode, Data: fragment})
		return root
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root
}

// render serializes the children of root.
func render(root *html.Node) string {
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			continue
		}
	}
	return b.String()
}

// Text returns the fully detagged rendition of fragment: entities decoded,
// breaks and block boundaries turned into spaces, every whitespace run
// collapsed to a single space, and the result trimmed.
func Text(fragment string) string {
	if fragment == "" {
		return ""
	}
	var b strings.Builder
	writeText(&b, parse(fragment))
	return Collapse(b.String())
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch {
		case n.DataAtom == atom.Br:
			b.WriteByte(' ')
			return
		case n.DataAtom == atom.Script || n.DataAtom == atom.Style:
			return
		case blockElements[n.DataAtom]:
			b.WriteByte(' ')
			defer b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}

// Collapse replaces every run of Unicode whitespace with one space and trims.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Inline sanitizes fragment into plain inline markup: bold wrappers are
// unwrapped, tables are flattened to their text content and breaks become a
// single space. Other inline formatting (emphasis, superscript, subscript)
// is preserved.
func Inline(fragment string) string {
	if fragment == "" {
		return ""
	}
	root := parse(fragment)
	flatten(root)
	mergeText(root)
	return strings.TrimSpace(render(root))
}

func flatten(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type != html.ElementNode {
			c = next
			continue
		}
		switch {
		case c.DataAtom == atom.Br:
			n.InsertBefore(&html.Node{Type: html.TextNode, Data: " "}, c)
			n.RemoveChild(c)
		case tableElements[c.DataAtom]:
			var b strings.Builder
			writeText(&b, c)
			n.InsertBefore(&html.Node{Type: html.TextNode, Data: " " + Collapse(b.String()) + " "}, c)
			n.RemoveChild(c)
		case c.DataAtom == atom.Strong || c.DataAtom == atom.B:
			flatten(c)
			for gc := c.FirstChild; gc != nil; {
				gnext := gc.NextSibling
				c.RemoveChild(gc)
				n.InsertBefore(gc, c)
				gc = gnext
			}
			n.RemoveChild(c)
		default:
			flatten(c)
		}
		c = next
	}
}

// mergeText joins adjacent text siblings and collapses whitespace runs
// inside them, keeping a single space at the edges where one existed.
func mergeText(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			for c.NextSibling != nil && c.NextSibling.Type == html.TextNode {
				c.Data += c.NextSibling.Data
				n.RemoveChild(c.NextSibling)
			}
			c.Data = collapseKeepEdges(c.Data)
			continue
		}
		mergeText(c)
	}
}

func collapseKeepEdges(s string) string {
	if s == "" {
		return s
	}
	inner := Collapse(s)
	if inner == "" {
		return " "
	}
	if strings.TrimLeftFunc(s, unicode.IsSpace) != s {
		inner = " " + inner
	}
	if strings.TrimRightFunc(s, unicode.IsSpace) != s {
		inner += " "
	}
	return inner
}

// segment is one piece of the text stream walked by TrimPrefix.
type segment struct {
	node *html.Node
	text string
}

// TrimPrefix removes the leading text matched by re from fragment while
// keeping the surrounding markup. re must be anchored with ^. Breaks count
// as a single space. Elements emptied by the removal are dropped. When re
// does not match at the start of the text, fragment is returned unchanged.
func TrimPrefix(fragment string, re *regexp.Regexp) string {
	root := parse(fragment)
	var segs []segment
	collectSegments(root, &segs)

	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	loc := re.FindStringIndex(b.String())
	if loc == nil || loc[0] != 0 || loc[1] == 0 {
		return fragment
	}

	remaining := loc[1]
	for _, s := range segs {
		if remaining <= 0 {
			break
		}
		if len(s.text) <= remaining {
			remaining -= len(s.text)
			if s.node.Type == html.TextNode {
				s.node.Data = ""
			}
			s.node.Parent.RemoveChild(s.node)
			continue
		}
		s.node.Data = s.node.Data[remaining:]
		remaining = 0
	}
	pruneEmpty(root)
	return strings.TrimSpace(render(root))
}

func collectSegments(n *html.Node, segs *[]segment) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			*segs = append(*segs, segment{node: c, text: c.Data})
		case c.Type == html.ElementNode && c.DataAtom == atom.Br:
			*segs = append(*segs, segment{node: c, text: " "})
		default:
			collectSegments(c, segs)
		}
	}
}

// pruneEmpty removes non-void elements left without any children.
func pruneEmpty(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			pruneEmpty(c)
			if c.FirstChild == nil && !voidElements[c.DataAtom] {
				n.RemoveChild(c)
			}
		}
		c = next
	}
}

var breakRun = regexp.MustCompile(`(?i)(?:<br\s*/?>\s*){3,}`)

// JoinBreaks joins fragments with Break, collapses runs of three or more
// consecutive breaks down to exactly two, and trims the result.
func JoinBreaks(parts []string) string {
	joined := strings.Join(parts, Break)
	joined = breakRun.ReplaceAllString(joined, Break+Break)
	return strings.TrimSpace(joined)
}

// Escape escapes plain text for use as markup.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
