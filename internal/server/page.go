package server

import (
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/nlui/studio/internal/render"
	"github.com/nlui/studio/internal/render/canvas"
)

// pageLayout is the preview shell: template sidebar, editable canvas and a
// prompt composer.
type pageLayout struct {
	Title   string
	Sidebar string
	Canvas  string
	Prompt  string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	doc, prompt, _ := s.current()
	layout := pageLayout{Title: "NLUI Studio", Prompt: prompt}
	if doc != nil {
		backend, err := render.New(canvas.Name, render.Options{Editable: true})
		if err == nil {
			res := render.Render(doc, backend)
			layout.Canvas = res.HTML
			s.log.Render(res.Backend, res.Nodes, "page", true)
		}
		if doc.Title != "" {
			layout.Title = doc.Title + " · NLUI Studio"
		}
	}
	if s.templates != nil {
		if list, err := s.templates.List(r.Context()); err == nil {
			var b strings.Builder
			for _, t := range list {
				b.WriteString(`<li><button type="button" class="tpl" data-prompt="`)
				b.WriteString(html.EscapeString(t.Prompt))
				b.WriteString(`" title="`)
				b.WriteString(html.EscapeString(t.Summary))
				b.WriteString(`">`)
				b.WriteString(html.EscapeString(t.Title))
				b.WriteString(`</button></li>`)
			}
			layout.Sidebar = b.String()
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := io.WriteString(w, buildPage(layout)); err != nil {
		s.log.Warn("write page", "error", err)
	}
}

func buildPage(l pageLayout) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>`)
	b.WriteString(html.EscapeString(l.Title))
	b.WriteString("</title>\n<style>")
	b.WriteString(shellStyles)
	b.WriteString(render.Stylesheet(canvas.Name))
	b.WriteString("</style>\n</head>\n<body>\n<div class=\"studio\">")

	b.WriteString(`<aside class="sidebar"><h2>Templates</h2><ul id="templates">`)
	b.WriteString(l.Sidebar)
	b.WriteString(`</ul></aside>`)

	b.WriteString(`<main class="canvas" id="canvas">`)
	if l.Canvas == "" {
		b.WriteString(`<p class="empty">Describe a screen below to generate it.</p>`)
	} else {
		b.WriteString(l.Canvas)
	}
	b.WriteString(`</main>`)

	b.WriteString(`<form class="composer" id="composer">
<textarea id="prompt" rows="2" placeholder="Describe the UI you want...">`)
	b.WriteString(html.EscapeString(l.Prompt))
	b.WriteString(`</textarea>
<button type="submit" id="submit">Generate</button>
<a href="/api/export" class="export">Export</a>
<span id="status" role="status"></span>
</form>
</div>
<script>`)
	b.WriteString(pageScript)
	b.WriteString("</script>\n</body></html>\n")
	return b.String()
}

const shellStyles = `
* { box-sizing: border-box; }
html, body { margin: 0; height: 100%; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif; }
.studio { display: grid; grid-template-columns: 260px 1fr; grid-template-rows: 1fr auto; height: 100vh; }
.sidebar { grid-row: 1 / -1; overflow-y: auto; padding: 16px; border-right: 1px solid #d0d7de; background: #f6f8fa; }
.sidebar h2 { font-size: 13px; text-transform: uppercase; letter-spacing: 0.05em; margin: 0 0 12px; }
.sidebar ul { list-style: none; margin: 0; padding: 0; }
.sidebar .tpl { width: 100%; text-align: left; padding: 6px 8px; margin-bottom: 4px; border: 1px solid transparent; border-radius: 6px; background: none; cursor: pointer; }
.sidebar .tpl:hover { border-color: #d0d7de; background: #fff; }
.canvas { position: relative; overflow: auto; padding: 24px; }
.canvas .empty { color: #57606a; }
.composer { grid-column: 2; display: flex; gap: 8px; align-items: center; padding: 12px 16px; border-top: 1px solid #d0d7de; }
.composer textarea { flex: 1; resize: vertical; padding: 8px 12px; border-radius: 8px; border: 1px solid #d0d7de; font: inherit; }
.composer button { padding: 8px 18px; border-radius: 8px; border: none; background: #0875e1; color: #fff; font-weight: 600; cursor: pointer; }
.composer button:disabled { opacity: 0.5; cursor: wait; }
.composer #status { min-width: 12em; color: #57606a; font-size: 13px; }
.composer #status.error { color: #cf222e; }
@media (max-width: 768px) { .studio { grid-template-columns: 1fr; } .sidebar { display: none; } .composer { grid-column: 1; } }
`

const pageScript = `
(function () {
  var canvas = document.getElementById('canvas');
  var form = document.getElementById('composer');
  var input = document.getElementById('prompt');
  var submit = document.getElementById('submit');
  var status = document.getElementById('status');

  function setStatus(text, isError) {
    status.textContent = text || '';
    status.className = isError ? 'error' : '';
  }

  function refresh() {
    fetch('/api/render?backend=canvas&editable=1', { method: 'POST' }).then(function (res) {
      if (res.status === 404) { canvas.innerHTML = '<p class="empty">Describe a screen below to generate it.</p>'; return; }
      return res.text().then(function (html) { canvas.innerHTML = html; });
    });
  }

  form.addEventListener('submit', function (ev) {
    ev.preventDefault();
    var prompt = input.value.trim();
    if (!prompt || submit.disabled) return;
    submit.disabled = true;
    setStatus('Generating...');
    fetch('/api/generate', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ prompt: prompt })
    }).then(function (res) {
      return res.json().then(function (body) {
        if (!res.ok) { setStatus(body.error || res.statusText, true); return; }
        setStatus('');
        refresh();
      });
    }).catch(function (err) {
      setStatus(String(err), true);
    }).finally(function () {
      submit.disabled = false;
    });
  });

  document.getElementById('templates').addEventListener('click', function (ev) {
    var btn = ev.target.closest('.tpl');
    if (btn) { input.value = btn.getAttribute('data-prompt'); input.focus(); }
  });

  var drag = null;
  canvas.addEventListener('pointerdown', function (ev) {
    var el = ev.target.closest('.wd-draggable');
    if (!el) return;
    var rect = el.getBoundingClientRect();
    var m = /translate\(([-\d.]+)px,\s*([-\d.]+)px\)/.exec(el.style.transform || '');
    var x = m ? parseFloat(m[1]) : 0;
    var y = m ? parseFloat(m[2]) : 0;
    drag = { el: el, startX: ev.clientX, startY: ev.clientY, x: x, y: y, w: rect.width, h: rect.height };
    el.setPointerCapture(ev.pointerId);
  });
  canvas.addEventListener('pointermove', function (ev) {
    if (!drag) return;
    var dx = ev.clientX - drag.startX, dy = ev.clientY - drag.startY;
    drag.el.style.transform = 'translate(' + (drag.x + dx) + 'px,' + (drag.y + dy) + 'px)';
  });
  canvas.addEventListener('pointerup', function (ev) {
    if (!drag) return;
    var d = drag;
    drag = null;
    var body = {
      id: d.el.getAttribute('data-node-id'),
      x: d.x + ev.clientX - d.startX,
      y: d.y + ev.clientY - d.startY,
      resolve: true, width: d.w, height: d.h
    };
    fetch('/api/layout/move', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(body)
    }).then(refresh);
  });

  function connect() {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(proto + location.host + '/ws');
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === 'document' && !drag) refresh();
      if (msg.type === 'templates') location.reload();
    };
    ws.onclose = function () { setTimeout(connect, 2000); };
  }
  connect();
})();
`
