package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/corpus"
	"github.com/spigell/resume-ranker/internal/keywords"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/metrics"
	"github.com/spigell/resume-ranker/internal/ranker"
	"github.com/spigell/resume-ranker/internal/report"
)

type uploadResponse struct {
	Message string   `json:"message"`
	Files   []string `json:"files"`
	Skipped []string `json:"skipped,omitempty"`
}

type jobDescriptionRequest struct {
	JobDescription string `json:"job_description"`
	Keywords       any    `json:"keywords"`
}

type jobDescriptionResponse struct {
	Message  string       `json:"message"`
	Keywords keywords.Set `json:"keywords"`
	Explicit bool         `json:"explicit_keywords"`
}

type rankResponse struct {
	Results      []ranker.Result `json:"results"`
	TotalResumes int             `json:"total_resumes"`
}

type reportRequest struct {
	Results []ranker.Result `json:"results"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	limit := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, err, fmt.Sprintf("Upload exceeds %d MB", s.cfg.MaxUploadMB))
			return
		}
		s.writeError(w, ErrInvalidInput, "No files uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["resumes"]
	if len(headers) == 0 {
		s.writeError(w, ErrInvalidInput, "No files uploaded")
		return
	}

	var (
		docs    []corpus.Document
		skipped []string
	)
	for _, fh := range headers {
		name := corpus.BaseName(fh.Filename)
		if name == "" || !corpus.Supported(name) {
			skipped = append(skipped, fh.Filename)
			continue
		}

		text, err := readUpload(fh, name)
		if errors.Is(err, corpus.ErrUnreadableDocument) {
			s.logger.Debug("skipping unreadable upload", zap.String("file", name), zap.Error(err))
			skipped = append(skipped, fh.Filename)
			continue
		}
		if err != nil {
			s.writeError(w, err, fmt.Sprintf("Reading %s failed", name))
			return
		}
		docs = append(docs, corpus.Document{ID: name, Text: text, Source: "upload"})
	}

	if len(docs) == 0 {
		err := fmt.Errorf("%w: %s", corpus.ErrUnsupportedFormat, strings.Join(skipped, ", "))
		s.writeError(w, err, "Unsupported file type, allowed: "+strings.Join(corpus.Extensions(), ", "))
		return
	}

	id := sessionID(r)
	total := 0
	_ = s.store.With(id, func(session *ranker.Session) error {
		for _, doc := range docs {
			session.AddDocument(doc.ID, doc.Text)
		}
		total = session.Len()
		return nil
	})
	s.metrics.DocumentsAddedTotal.Add(float64(len(docs)))

	files := make([]string, 0, len(docs))
	for _, doc := range docs {
		files = append(files, doc.ID)
	}

	logger.WithSession(s.logger, id, "upload").Info("resumes uploaded",
		zap.Strings("files", files),
		zap.Strings("skipped", skipped),
		zap.Int("session_documents", total),
	)

	writeJSON(w, http.StatusOK, uploadResponse{
		Message: fmt.Sprintf("Successfully uploaded %d files", len(files)),
		Files:   files,
		Skipped: skipped,
	})
}

func readUpload(fh *multipart.FileHeader, name string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return corpus.Extract(name, data)
}

func (s *Server) handleSetJobDescription(w http.ResponseWriter, r *http.Request) {
	var req jobDescriptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		s.writeError(w, ErrInvalidInput, "Job description is required")
		return
	}

	weights, err := keywords.ParseWeights(req.Keywords)
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %w", ErrInvalidInput, err), err.Error())
		return
	}

	var resp jobDescriptionResponse
	err = s.store.With(sessionID(r), func(session *ranker.Session) error {
		if err := session.SetQuery(req.JobDescription, weights); err != nil {
			return err
		}
		q := session.Query()
		resp = jobDescriptionResponse{
			Message:  "Job description set successfully",
			Keywords: q.Keywords,
			Explicit: q.Explicit,
		}
		return nil
	})
	if err != nil {
		s.writeError(w, err, err.Error())
		return
	}

	if resp.Keywords == nil {
		resp.Keywords = keywords.Set{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	var results []ranker.Result
	err := s.store.Existing(id, func(session *ranker.Session) error {
		if session.Len() == 0 {
			return ErrNoDocuments
		}

		start := time.Now()
		res, err := session.ComputeRanking()
		if err != nil {
			return err
		}
		s.metrics.ObserveRanking(metrics.ResultOK, len(res), time.Since(start).Seconds())
		results = res
		return nil
	})

	switch {
	case errors.Is(err, ErrNoSession), errors.Is(err, ErrNoDocuments):
		s.metrics.ObserveRanking(metrics.ResultEmpty, 0, 0)
		s.writeError(w, err, "No resumes uploaded")
		return
	case errors.Is(err, ranker.ErrNoQuerySet):
		s.metrics.ObserveRanking(metrics.ResultNoQuery, 0, 0)
		s.writeError(w, err, "No job description set")
		return
	case err != nil:
		s.writeError(w, err, "Ranking failed")
		return
	}

	logger.WithSession(s.logger, id, "").Info("resumes ranked", zap.Int("total_resumes", len(results)))

	writeJSON(w, http.StatusOK, rankResponse{Results: results, TotalResumes: len(results)})
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err, "Invalid request body")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, req.Results); err != nil {
		s.writeError(w, err, "Building report failed")
		return
	}

	filename := report.ReportFilename(s.now())
	w.Header().Set("Content-Type", report.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	existed := s.store.Delete(id)

	logger.WithSession(s.logger, id, "").Info("session reset", zap.Bool("existed", existed))

	writeJSON(w, http.StatusOK, messageResponse{Message: "System reset successfully"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error, message string) {
	status := HTTPStatusCode(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.Error(err), zap.Int("status", status))
	}
	writeJSON(w, status, map[string]string{"error": message})
}
