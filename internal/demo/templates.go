package demo

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/duskmode/duskmode/schemes"
)

// pageTemplate is the demo document. The root tag embeds the class
// placeholder the synchronizer substitutes; the rest is plain markup the
// middleware never touches.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" class="%duskmode.classes%">
<head>
<meta charset="utf-8">
<title>duskmode demo</title>
<style>
:root { color-scheme: light dark; }
body { font-family: sans-serif; margin: 2rem auto; max-width: 42rem; transition: background .3s, color .3s; }
.theme-switching * { transition: none !important; }
[data-theme="dark"] body { background: #1a1a2a; color: #eee; }
.swatch { display: inline-block; width: 1em; height: 1em; border: 1px solid #8884; vertical-align: middle; }
</style>
</head>
<body>
<h1>duskmode demo</h1>
<p>Current theme: <code id="current">?</code></p>
<p>
<button data-mode="light">Light</button>
<button data-mode="dark">Dark</button>
<button data-mode="system">System</button>
<button id="cycle">Cycle</button>
</p>
<section id="gallery">
{{GALLERY}}
</section>
<script>
document.querySelectorAll('[data-mode]').forEach(function (btn) {
  btn.addEventListener('click', function () {
    fetch('/api/theme', { method: 'POST', headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ theme: btn.dataset.mode }) }).then(function () { location.reload(); });
  });
});
document.getElementById('cycle').addEventListener('click', function () {
  fetch('/api/theme/cycle', { method: 'POST' }).then(function () { location.reload(); });
});
document.querySelectorAll('[data-pick-scheme]').forEach(function (btn) {
  btn.addEventListener('click', function () {
    fetch('/api/theme', { method: 'POST', headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ themeScheme: btn.dataset.pickScheme }) }).then(function () { location.reload(); });
  });
});
document.getElementById('current').textContent = document.documentElement.className;
(function () {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var sock = new WebSocket(proto + location.host + '/ws');
  sock.onmessage = function () { location.reload(); };
})();
</script>
</body>
</html>
`

// renderGallery builds the scheme picker markup. Descriptions are authored
// in Markdown and rendered with goldmark; everything else is escaped
// before interpolation.
func renderGallery(reg *schemes.Registry) string {
	md := goldmark.New()

	var b strings.Builder
	b.WriteString("<h2>Schemes</h2>\n<ul>\n")
	for _, id := range reg.IDs() {
		cfg, _ := reg.Get(id)
		b.WriteString("<li>")
		fmt.Fprintf(&b, `<span class="swatch" style="background:%s"></span> `, html.EscapeString(cfg.PreviewLight))
		fmt.Fprintf(&b, `<span class="swatch" style="background:%s"></span> `, html.EscapeString(cfg.PreviewDark))
		fmt.Fprintf(&b, `<button data-pick-scheme="%s">%s</button>`,
			html.EscapeString(cfg.ID), html.EscapeString(cfg.DisplayName))
		if cfg.Description != "" {
			var desc bytes.Buffer
			if err := md.Convert([]byte(cfg.Description), &desc); err == nil {
				b.WriteString(desc.String())
			}
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// renderPage assembles the full demo document, before theme injection.
func renderPage(reg *schemes.Registry) string {
	return strings.Replace(pageTemplate, "{{GALLERY}}", renderGallery(reg), 1)
}
