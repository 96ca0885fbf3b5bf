package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"index.html", "register.html", "login.html", "upload.html", "dashboard.html"} {
		pages[name] = template.Must(template.ParseFS(templatesFS, "templates/base.html", "templates/"+name))
	}
}

// pageData is what every template receives.
type pageData struct {
	Title string
	Email string
	Data  any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	tmpl, ok := pages[name]
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if sess := sessionFrom(r.Context()); sess != nil {
		data.Email = sess.Email
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		s.logger.Error(r.Context(), "render template failed", "template", name, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
