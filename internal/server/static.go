package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FileHandler serves files under root. Paths escaping root are rejected with
// 400. When the file does not exist the first existing fallback is served;
// with no fallbacks the response is 404.
func FileHandler(root string, fallbacks ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(r.URL.Path, "/")
		if rel == "" && len(fallbacks) > 0 {
			rel = fallbacks[0]
		}

		full := filepath.Join(root, filepath.FromSlash(rel))
		if !within(root, full) {
			http.Error(w, "Invalid path", http.StatusBadRequest)
			return
		}
		if serveFile(w, r, full) {
			return
		}

		for _, name := range fallbacks {
			if serveFile(w, r, filepath.Join(root, name)) {
				return
			}
		}
		if len(fallbacks) == 0 {
			http.NotFound(w, r)
			return
		}
		http.Error(w, strings.Join(fallbacks, "/")+" not found on server", http.StatusInternalServerError)
	})
}

func within(root, full string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), full)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func serveFile(w http.ResponseWriter, r *http.Request, path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
