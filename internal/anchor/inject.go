// Package anchor rewrites an HTML document in a single tokenizing pass,
// inserting a named anchor before the text of every configured target
// element and recording the (text, id) pairs in document order.
package anchor

import (
	"errors"
	"fmt"
	"strings"
)

// Entry records one injected anchor: the trimmed display text and the
// identifier written into the document.
type Entry struct {
	Text string `json:"text"`
	ID   string `json:"id"`
}

// ErrNoTargets is returned when Inject is called with an empty target set.
var ErrNoTargets = errors.New("anchor: no target elements given")

// Inject scans document once and returns a rewritten copy plus the anchors
// it inserted. Element names in targets are matched case-insensitively.
//
// Inside a target region, every non-blank text run is prefixed with
// <A name="{id}"></A> and followed by a single space; the id is the
// percent-encoded trimmed text. Everything that is not text — tags,
// comments, declarations, processing instructions — is reproduced from its
// literal source, so malformed markup passes through untouched.
//
// Region tracking is a depth counter: any target start tag increments it,
// any target end tag decrements it, regardless of whether the names pair
// up. Mismatched or overlapping target tags are therefore tolerated
// silently rather than rejected.
func Inject(document string, targets []string) (string, []Entry, error) {
	set := make(map[string]bool, len(targets))
	for _, name := range targets {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			set[name] = true
		}
	}
	if len(set) == 0 {
		return "", nil, ErrNoTargets
	}

	var (
		out     strings.Builder
		entries []Entry
		depth   int
	)

	lx := newLexer(document)
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}

		switch tok.Kind {
		case KindStartTag:
			if set[tok.Name] {
				depth++
			}
			out.WriteString(tok.Raw)

		case KindEndTag:
			if set[tok.Name] && depth > 0 {
				depth--
			}
			out.WriteString(tok.Raw)

		case KindText:
			text := strings.TrimSpace(tok.Raw)
			if depth > 0 && text != "" {
				id := FragmentID(text)
				out.WriteString(`<A name="`)
				out.WriteString(id)
				out.WriteString(`"></A>`)
				out.WriteString(text)
				out.WriteByte(' ')
				entries = append(entries, Entry{Text: text, ID: id})
			} else {
				out.WriteString(text)
			}

		case KindSelfClosingTag, KindComment, KindDoctype:
			out.WriteString(tok.Raw)

		default:
			// The lexer produced something outside the closed token set:
			// an incompatible tokenizer, not bad input.
			return "", nil, fmt.Errorf("anchor: unexpected token kind %v", tok.Kind)
		}
	}

	return out.String(), entries, nil
}
