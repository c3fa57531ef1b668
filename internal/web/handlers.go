package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/recon/internal/core"
	"github.com/JonMunkholm/recon/internal/report"
	"github.com/JonMunkholm/recon/internal/web/templates"
)

// multipartOverhead is the allowance for form fields and part headers on top
// of the two files.
const multipartOverhead = 1 << 20

// runResponse is the JSON shape of a finished run.
type runResponse struct {
	ID          string           `json:"id"`
	Profile     string           `json:"profile"`
	FileNameA   string           `json:"fileNameA"`
	FileNameB   string           `json:"fileNameB"`
	Settings    core.Settings    `json:"settings"`
	Summary     core.Summary     `json:"summary"`
	Diagnostics core.Diagnostics `json:"diagnostics"`
	Result      *core.Result     `json:"result,omitempty"`
	WorkbookURL string           `json:"workbookUrl"`
}

func newRunResponse(run *core.Run, withRecords bool) runResponse {
	resp := runResponse{
		ID:          run.ID,
		Profile:     run.Profile,
		FileNameA:   run.FileNameA,
		FileNameB:   run.FileNameB,
		Settings:    run.Settings,
		Summary:     run.Result.Summary,
		Diagnostics: run.Result.Diagnostics,
		WorkbookURL: "/runs/" + run.ID + "/workbook",
	}
	if withRecords {
		resp.Result = run.Result
	}
	return resp
}

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := templates.Page("Position reconciliation",
		templates.UploadForm(s.service.Profiles(), s.service.DefaultProfile()))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page.Render(r.Context(), w)
}

// handleReconcile runs a reconciliation from the upload form. Browsers are
// redirected to the stored run; HTMX requests get the results fragment and
// JSON clients the run summary.
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	run, err := s.runFromForm(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	switch {
	case wantsJSON(r):
		writeJSON(w, r, http.StatusCreated, newRunResponse(run, false))
	case isHTMX(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.Results(run).Render(r.Context(), w)
	default:
		http.Redirect(w, r, "/runs/"+run.ID, http.StatusSeeOther)
	}
}

// handleAPIReconcile is the JSON variant of handleReconcile. The response
// includes every record of the four sets.
func (s *Server) handleAPIReconcile(w http.ResponseWriter, r *http.Request) {
	run, err := s.runFromForm(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusCreated, newRunResponse(run, true))
}

// runFromForm reads the multipart fields source_a, source_b and profile and
// hands them to the service.
func (s *Server) runFromForm(w http.ResponseWriter, r *http.Request) (*core.Run, error) {
	maxFile := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxFile+multipartOverhead)

	if err := r.ParseMultipartForm(maxFile); err != nil {
		return nil, fmt.Errorf("parse upload form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	fileA, err := formFile(r, "source_a", maxFile)
	if err != nil {
		return nil, err
	}
	fileB, err := formFile(r, "source_b", maxFile)
	if err != nil {
		return nil, err
	}

	ctx := WithRequestMetadata(r.Context(), r)
	return s.service.Run(ctx, core.RunRequest{
		Profile: r.FormValue("profile"),
		FileA:   fileA,
		FileB:   fileB,
	})
}

// formFile reads one uploaded file. A missing field yields an Upload with nil
// Data, which the service reports as a missing file for the right source.
func formFile(r *http.Request, field string, maxSize int64) (core.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return core.Upload{}, nil
	}
	if err != nil {
		return core.Upload{}, fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()

	// One extra byte lets the service detect an oversized file.
	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return core.Upload{}, fmt.Errorf("read %s: %w", field, err)
	}
	if data == nil {
		data = []byte{}
	}
	return core.Upload{Name: header.Filename, Data: data}, nil
}

// handleRun renders the results page of a stored run.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.service.GetRun(chi.URLParam(r, "runID"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Page("Reconciliation results", templates.Results(run)).Render(r.Context(), w)
}

// handleAPIRun returns a stored run with all records as JSON.
func (s *Server) handleAPIRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.service.GetRun(chi.URLParam(r, "runID"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, newRunResponse(run, true))
}

// handleWorkbook downloads the four result sets as an XLSX workbook.
func (s *Server) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	run, err := s.service.GetRun(chi.URLParam(r, "runID"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	// Build in memory so a failure can still be reported as an error page.
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, run.Result, run.Settings); err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("reconciliation_%s.xlsx", run.CreatedAt.Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	buf.WriteTo(w)
}

// handleListProfiles returns the registered profiles as JSON.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"default":  s.service.DefaultProfile(),
		"profiles": s.service.Profiles(),
	})
}

// handleHealth reports liveness and current run concurrency.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"runs":   s.service.LimiterStatus(),
	})
}
