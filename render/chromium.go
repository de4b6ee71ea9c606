package render

import (
	"fmt"
	"io"
	"log"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// ChromiumCanvas は HTMLCanvas で組んだページをヘッドレス Chromium で PDF に印刷します。
// Chromium が起動できない環境ではエラーを返します。
type ChromiumCanvas struct {
	*HTMLCanvas
	BinPath string
}

func NewChromiumCanvas(title, binPath string) *ChromiumCanvas {
	return &ChromiumCanvas{HTMLCanvas: NewHTMLCanvas(title), BinPath: binPath}
}

func (c *ChromiumCanvas) Bytes() ([]byte, error) {
	return PrintHTMLToPDF(c.HTML(), c.BinPath)
}

// PrintHTMLToPDF は HTML 文字列を Letter サイズ・余白なしの PDF に変換します。
func PrintHTMLToPDF(page string, binPath string) ([]byte, error) {
	l := launcher.New().
		Headless(true).
		Leakless(false)
	if binPath != "" {
		l = l.Bin(binPath)
	}
	defer l.Cleanup()

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to chromium: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Printf("WARN: failed to close chromium: %v", err)
		}
	}()

	p, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	if err := p.SetDocumentContent(page); err != nil {
		return nil, fmt.Errorf("failed to set document content: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to wait for page load: %w", err)
	}

	r, err := p.PDF(&proto.PagePrintToPDF{
		PaperWidth:      gson.Num(8.5),
		PaperHeight:     gson.Num(11),
		MarginTop:       gson.Num(0),
		MarginBottom:    gson.Num(0),
		MarginLeft:      gson.Num(0),
		MarginRight:     gson.Num(0),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf stream: %w", err)
	}
	return data, nil
}
