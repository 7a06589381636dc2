package anchor

import (
	"strings"

	"golang.org/x/net/html"
)

// Kind classifies a lexical token of the document.
type Kind int

const (
	KindText Kind = iota
	KindStartTag
	KindEndTag
	KindSelfClosingTag
	KindComment // also declarations and processing instructions
	KindDoctype
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindStartTag:
		return "start-tag"
	case KindEndTag:
		return "end-tag"
	case KindSelfClosingTag:
		return "self-closing-tag"
	case KindComment:
		return "comment"
	case KindDoctype:
		return "doctype"
	}
	return "unknown"
}

// Token is one lexical unit of the document. Raw holds the literal source
// text so the token can be written back unchanged. Name is set for tag
// tokens only and is always lower case.
type Token struct {
	Kind Kind
	Name string
	Raw  string
}

// lexer adapts golang.org/x/net/html's tokenizer to the token model above.
// The underlying tokenizer reports declarations and processing instructions
// as comment tokens; both pass through here as KindComment with their raw
// source intact.
type lexer struct {
	z *html.Tokenizer
}

func newLexer(document string) *lexer {
	return &lexer{z: html.NewTokenizer(strings.NewReader(document))}
}

// next returns the next token, or ok=false when the stream is exhausted.
// Raw is copied out of the tokenizer's buffer, which is reused between calls.
func (l *lexer) next() (tok Token, ok bool) {
	tt := l.z.Next()
	if tt == html.ErrorToken {
		return Token{}, false
	}

	tok.Raw = string(l.z.Raw())

	switch tt {
	case html.TextToken:
		tok.Kind = KindText
	case html.StartTagToken:
		tok.Kind = KindStartTag
	case html.EndTagToken:
		tok.Kind = KindEndTag
	case html.SelfClosingTagToken:
		tok.Kind = KindSelfClosingTag
	case html.CommentToken:
		tok.Kind = KindComment
	case html.DoctypeToken:
		tok.Kind = KindDoctype
	}

	switch tt {
	case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
		name, _ := l.z.TagName()
		tok.Name = string(name)
	}

	return tok, true
}
