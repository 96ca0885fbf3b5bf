package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/studynotes/internal/common"
	"github.com/dmitrijs2005/studynotes/internal/server/models"
	"github.com/dmitrijs2005/studynotes/internal/server/services"
)

const (
	reportFilename  = "result.pdf"
	msgNoData       = "No data available"
	maxUploadMemory = 8 << 20
)

type uploadResponse struct {
	Branch    string   `json:"branch"`
	Subject   string   `json:"subject"`
	Summary   string   `json:"summary"`
	Questions []string `json:"questions"`
}

// HistoryItem is the dashboard's JSON representation of one record.
type HistoryItem struct {
	ID        string    `json:"id"`
	Branch    string    `json:"branch"`
	Subject   string    `json:"subject"`
	Filename  string    `json:"filename"`
	Summary   string    `json:"summary"`
	Questions []string  `json:"questions"`
	CreatedAt time.Time `json:"created_at"`
}

func toHistoryItems(list []*models.History) []HistoryItem {
	items := make([]HistoryItem, 0, len(list))
	for _, h := range list {
		items = append(items, HistoryItem{
			ID:        h.ID,
			Branch:    h.Branch,
			Subject:   h.Subject,
			Filename:  h.Filename,
			Summary:   h.Summary,
			Questions: h.Questions,
			CreatedAt: h.CreatedAt,
		})
	}
	return items
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index.html", pageData{Title: "Study Notes"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "upload.html", pageData{Title: "Upload"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if s.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part submitted without a filename is parsed as a plain value.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			status, msg := uploadError(common.ErrEmptyFilename)
			writeError(w, status, msg)
			return
		}
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error processing file")
		return
	}

	h, err := s.docs.Process(r.Context(), sess, services.Upload{
		Filename: header.Filename,
		Branch:   strings.TrimSpace(r.FormValue("branch")),
		Subject:  strings.TrimSpace(r.FormValue("subject")),
		Data:     data,
	})
	if err != nil {
		status, msg := uploadError(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Branch:    h.Branch,
		Subject:   h.Subject,
		Summary:   h.Summary,
		Questions: h.Questions,
	})
}

func uploadError(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrEmptyFilename):
		return http.StatusBadRequest, "No selected file"
	case errors.Is(err, common.ErrUnsupportedFileType):
		return http.StatusBadRequest, "File type not allowed"
	case errors.Is(err, common.ErrEmptyText):
		return http.StatusBadRequest, "File contains no readable text"
	default:
		return http.StatusInternalServerError, "Error processing file"
	}
}

func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	pdf, err := s.docs.LatestReport(r.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = io.WriteString(w, msgNoData)
			return
		}
		writeError(w, http.StatusInternalServerError, "Error generating report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+reportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	list, err := s.docs.ListHistory(r.Context(), sess.UserID)
	if err != nil {
		if wantsJSON(r) {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	items := toHistoryItems(list)
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, items)
		return
	}
	s.render(w, r, "dashboard.html", pageData{Title: "Dashboard", Data: items})
}
