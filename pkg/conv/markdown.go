package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	mdExtensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	rendererOpts = html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank}
	tgPolicy     = newTelegramPolicy()
)

// newTelegramPolicy allows only the tags Telegram's HTML parse mode
// accepts: https://core.telegram.org/bots/api#html-style
func newTelegramPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	return p
}

// MarkdownToTelegramHTML renders model output as HTML and strips every
// tag Telegram would reject.
func MarkdownToTelegramHTML(md []byte) string {
	p := parser.NewWithExtensions(mdExtensions)
	renderer := html.NewRenderer(rendererOpts)
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	return string(tgPolicy.SanitizeBytes(unsafeHTML))
}
