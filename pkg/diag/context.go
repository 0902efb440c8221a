package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Context is a range of text in a source code. It is typically used for
// errors that can be associated with a part of the source code, like parse
// errors and construction errors.
type Context struct {
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// Position returns the 1-based line and column of the start of the range.
// Columns are counted in runes.
func (c *Context) Position() (line, col int) {
	if c.From < 0 || c.From > len(c.Source) {
		return 0, 0
	}
	before := c.Source[:c.From]
	line = strings.Count(before, "\n") + 1
	col = utf8.RuneCountInString(lastLine(before)) + 1
	return line, col
}

func (c *Context) describeStart() string {
	if err := c.checkPosition(); err != nil {
		return c.Name + ":?"
	}
	line, col := c.Position()
	return fmt.Sprintf("%s:%d:%d", c.Name, line, col)
}

// Show shows the context: its position followed by the relevant source with
// the culprit highlighted.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return err.Error()
	}
	desc := c.describeStart() + ": "
	descIndent := strings.Repeat(" ", utf8.RuneCountInString(desc))
	return desc + c.relevantSource(indent+descIndent)
}

func (c *Context) checkPosition() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	} else if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) relevantSource(indent string) string {
	before := c.Source[:c.From]
	culprit := c.Source[c.From:c.To]
	after := c.Source[c.To:]

	head := lastLine(before)
	// If the culprit ends with a newline, strip it. Otherwise, tail is nonempty.
	var tail string
	if strings.HasSuffix(culprit, "\n") {
		culprit = culprit[:len(culprit)-1]
	} else {
		tail = firstLine(after)
	}
	if culprit == "" {
		culprit = culpritPlaceHolder
	}

	var sb strings.Builder
	sb.WriteString(head)
	for i, line := range strings.Split(culprit, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(indent)
		}
		sb.WriteString(culpritStart + line + culpritEnd)
	}
	sb.WriteString(tail)
	return sb.String()
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
