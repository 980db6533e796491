// Package web embeds the HTML templates and static assets of the portal.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates static
var files embed.FS

// NewEngine returns the Fiber view engine over the embedded templates.
// Templates are addressed by path without extension, e.g. "pages/home" or "layouts/base".
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(mustSub("templates")), ".html")
	engine.AddFuncMap(Funcs())
	return engine
}

// Static is the file system served under /static.
func Static() http.FileSystem {
	return http.FS(mustSub("static"))
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs are the template helpers shared by every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"rupiah":   Rupiah,
		"date":     formatDate,
		"contains": contains,
		"year":     func() int { return time.Now().Year() },
	}
}

// Rupiah formats n with dot thousand separators, e.g. 250000000 -> "Rp 250.000.000".
func Rupiah(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
