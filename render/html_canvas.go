package render

import (
	"fmt"
	"html"
	"strings"
)

type htmlText struct {
	x, y float64
	bold bool
	size float64
	text string
}

// HTMLCanvas は描画コマンドを絶対配置の <div> として1ページのHTMLに書き出します。
// プレビュー表示と Chromium による PDF 化の両方で使います。
type HTMLCanvas struct {
	Title string

	bold  bool
	size  float64
	texts []htmlText
}

func NewHTMLCanvas(title string) *HTMLCanvas {
	return &HTMLCanvas{Title: title, size: 12}
}

func (c *HTMLCanvas) SetFont(bold bool, size float64) {
	c.bold = bold
	c.size = size
}

func (c *HTMLCanvas) DrawString(x, y float64, text string) {
	c.texts = append(c.texts, htmlText{x: x, y: y, bold: c.bold, size: c.size, text: text})
}

func (c *HTMLCanvas) Bytes() ([]byte, error) {
	return []byte(c.HTML()), nil
}

// HTML は完成したページを返します。
func (c *HTMLCanvas) HTML() string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>`)
	sb.WriteString(html.EscapeString(c.Title))
	sb.WriteString(`</title>
<style>
    @page { size: 8.5in 11in; margin: 0; }
    body { margin: 0; }
    .page { position: relative; width: 612pt; height: 792pt; overflow: hidden; font-family: Helvetica, Arial, sans-serif; }
    .t { position: absolute; white-space: pre; line-height: 1; }
    .b { font-weight: bold; }
</style>
</head>
<body>
<div class="page">
`)

	for _, t := range c.texts {
		class := "t"
		if t.bold {
			class = "t b"
		}
		// PDFのベースライン位置に合わせ、上端 = ページ高 - y - フォントサイズ とする
		top := PageHeight - t.y - t.size
		sb.WriteString(fmt.Sprintf(`<div class="%s" style="left:%.2fpt;top:%.2fpt;font-size:%.0fpt">%s</div>`+"\n",
			class, t.x, top, t.size, html.EscapeString(t.text)))
	}

	sb.WriteString(`</div>
</body>
</html>
`)
	return sb.String()
}
