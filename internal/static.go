package internal

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// staticHandler serves files from fsys below pattern. A directory is served
// only through its index.html; otherwise it is a 404, never a listing.
func staticHandler(pattern string, fsys fs.FS) http.Handler {
	prefix := strings.TrimSuffix(pattern, "/")
	files := http.StripPrefix(prefix, http.FileServerFS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && !hasIndex(fsys, strings.TrimPrefix(r.URL.Path, prefix)) {
			http.NotFound(w, r)
			return
		}
		h := w.Header()
		h.Set("Cache-Control", "public, max-age=3600")
		h.Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}

func hasIndex(fsys fs.FS, dir string) bool {
	name := strings.TrimPrefix(path.Join(dir, "index.html"), "/")
	_, err := fs.Stat(fsys, name)
	return err == nil
}
