package display

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the banner art horizontally centred for the current
// terminal width. To change the banner replace banner.txt.
func RenderBanner() string {
	return center(strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n"), termWidth())
}

func center(lines []string, width int) string {
	maxW := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > maxW {
			maxW = n
		}
	}

	var b strings.Builder
	for _, l := range lines {
		if width > maxW {
			b.WriteString(strings.Repeat(" ", (width-maxW)/2))
		}
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderHelp lays out command/description pairs in two columns.
func RenderHelp(rows [][2]string) string {
	w := 0
	for _, r := range rows {
		if len(r[0]) > w {
			w = len(r[0])
		}
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString("  " + activeStyle.Render(fmt.Sprintf("%-*s", w, r[0])))
		if r[1] != "" {
			b.WriteString("  " + secondaryStyle.Render(r[1]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
