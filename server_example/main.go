// An HTTP server rendering pages from a template folder. Templates are
// recompiled on the fly while the server runs, so edits under
// templates/ show up on the next request.
package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/stachehq/stache"
	"go.uber.org/zap"
)

const indexPage = `<html>
<head><title>{{title}}</title></head>
<body>
<h1>{{title}}</h1>
<p>Rendered at {{now}}.</p>
{{#visits}}<p>You are visitor number {{visits}}.</p>{{/visits}}
</body>
</html>`

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	dir := "templates"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Fatal("creating template folder", zap.Error(err))
	}
	path := filepath.Join(dir, "index.html")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(indexPage), 0o644); err != nil {
			logger.Fatal("writing default template", zap.Error(err))
		}
	}

	folder, err := stache.FromFolder(dir, ".html", stache.WithLogger(logger))
	if err != nil {
		logger.Fatal("loading templates", zap.Error(err))
	}

	watcher, err := folder.Watch(200 * time.Millisecond)
	if err != nil {
		logger.Fatal("watching templates", zap.Error(err))
	}
	defer watcher.Close()
	watcher.OnReload(func(name string, _ *stache.Template, err error) {
		if err != nil {
			logger.Warn("template broken, keeping it out of the set",
				zap.String("name", name), zap.Error(err))
		}
	})

	visits := uint64(0)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		tpl, ok := folder.Get("index.html")
		if !ok {
			http.Error(w, "template missing", http.StatusInternalServerError)
			return
		}
		visits++
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := tpl.RenderTo(w, stache.Map{
			"title":  stache.String("Hello from stache"),
			"now":    stache.String(time.Now().Format(time.RFC1123)),
			"visits": stache.Uint(visits),
		})
		if err != nil {
			logger.Warn("render failed", zap.Error(err))
		}
	})

	logger.Info("listening", zap.String("addr", ":8080"))
	if err := http.ListenAndServe(":8080", nil); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
