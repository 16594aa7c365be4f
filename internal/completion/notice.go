package completion

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// NoticeData is the data available to the "no matches" notice template
type NoticeData struct {
	Partial string
	Lines   int
}

// Notice renders the message shown when a partial word has no candidates
type Notice struct {
	tmpl *template.Template
}

// ParseNotice parses a text/template with the sprig function map.
// An empty template disables the notice.
func ParseNotice(text string) (*Notice, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	tmpl, err := template.New("notice").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, err
	}
	return &Notice{tmpl: tmpl}, nil
}

// Render executes the template
func (n *Notice) Render(data NoticeData) (string, error) {
	var b strings.Builder
	if err := n.tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
