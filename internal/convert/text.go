package convert

import (
	"bufio"
	"html"
	"io"
	"strings"
)

// TextConverter wraps blank-line-separated paragraphs of plain text in <p>
// blocks.
type TextConverter struct{}

func (c *TextConverter) Convert(r io.Reader, filename string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out strings.Builder
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			out.WriteString("<p>")
			out.WriteString(html.EscapeString(current.String()))
			out.WriteString("</p>\n")
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return "", err
	}
	return out.String(), nil
}
