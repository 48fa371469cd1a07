package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"resume-extractor/internal/docext"
	apperrors "resume-extractor/internal/errors"
	"resume-extractor/internal/models"
	"resume-extractor/internal/storage"

	"github.com/google/uuid"
)

const defaultMaxUploadBytes = 10 << 20

type Extractor interface {
	Extract(ctx context.Context, pages []string) (*models.CandidateRecord, error)
}

type APIHandler struct {
	jobs           storage.JobStore
	candidates     storage.CandidateStore
	queue          storage.JobQueuer
	uploader       storage.FileStorer
	extractor      Extractor
	s3Bucket       string
	maxUploadBytes int64
	logger         *slog.Logger
}

type Config struct {
	Jobs           storage.JobStore
	Candidates     storage.CandidateStore
	Queue          storage.JobQueuer
	Store          storage.FileStorer
	Extractor      Extractor
	S3Bucket       string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

func NewAPIHandler(cfg Config) *APIHandler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &APIHandler{
		jobs:           cfg.Jobs,
		candidates:     cfg.Candidates,
		queue:          cfg.Queue,
		uploader:       cfg.Store,
		extractor:      cfg.Extractor,
		s3Bucket:       cfg.S3Bucket,
		maxUploadBytes: cfg.MaxUploadBytes,
		logger:         cfg.Logger,
	}
}

type uploadResponse struct {
	JobID string `json:"jobId"`
}

type resultResponse struct {
	Job       *models.Job             `json:"job"`
	Candidate *models.CandidateRecord `json:"data,omitempty"`
}

type parseResponse struct {
	ID   uuid.UUID               `json:"id"`
	Data *models.CandidateRecord `json:"data"`
}

type upload struct {
	fileName    string
	contentType string
	data        []byte
}

// readUpload pulls the "resume" form file, bounded by maxUploadBytes, and
// detects its type. It writes the error response itself and returns nil
// when the request cannot go further.
func (h *APIHandler) readUpload(w http.ResponseWriter, r *http.Request) *upload {

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, fileHeader, err := r.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "The file exceeds the upload size limit.", http.StatusRequestEntityTooLarge)
			return nil
		}
		http.Error(w, "An error occurred upon retrieving the file.", http.StatusBadRequest)
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "An error occurred upon reading the file.", http.StatusBadRequest)
		return nil
	}

	if len(data) == 0 {
		http.Error(w, "The uploaded file is empty.", http.StatusBadRequest)
		return nil
	}

	contentType := docext.DetectContentType(fileHeader.Filename, data)
	if !docext.Supported(contentType) {
		http.Error(w, "Unsupported file type, upload a PDF, DOCX or plain text file.", http.StatusUnsupportedMediaType)
		return nil
	}

	return &upload{fileName: fileHeader.Filename, contentType: contentType, data: data}
}

// HandleUploadResume stores the file, records a queued job and hands the
// job id to the workers.
func (h *APIHandler) HandleUploadResume(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()

	u := h.readUpload(w, r)
	if u == nil {
		return
	}

	newJobID, err := uuid.NewV7()
	if err != nil {
		http.Error(w, "An error occurred while processing your resume", http.StatusInternalServerError)
		return
	}

	uniqueFileName := newJobID.String() + strings.ToLower(filepath.Ext(u.fileName))

	if _, err := h.uploader.Upload(r.Context(), bytes.NewReader(u.data), h.s3Bucket, uniqueFileName, u.contentType); err != nil {
		h.logger.Error("failed to upload resume", "job_id", newJobID, "error", err)
		http.Error(w, "Failed to upload file", http.StatusInternalServerError)
		return
	}

	newJob := &models.Job{
		ID:          newJobID,
		FileName:    uniqueFileName,
		ContentType: u.contentType,
		Status:      models.StatusQueued,
		CreatedAt:   time.Now(),
	}

	if err := h.jobs.CreateJob(r.Context(), newJob); err != nil {
		h.logger.Error("failed to create job", "job_id", newJobID, "error", err)
		http.Error(w, "An error occurred while processing your resume", http.StatusInternalServerError)
		return
	}

	if err := h.queue.InsertJob(r.Context(), newJobID.String()); err != nil {
		h.logger.Error("failed to enqueue job", "job_id", newJobID, "error", err)
		http.Error(w, "An error occurred while processing your resume", http.StatusInternalServerError)
		return
	}

	h.logger.Info("job queued", "job_id", newJobID, "file_name", uniqueFileName, "content_type", u.contentType)
	h.writeJSON(w, http.StatusAccepted, uploadResponse{JobID: newJobID.String()})
}

// HandleViewResult reports a job and, once it completed, its record.
func (h *APIHandler) HandleViewResult(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()

	jobID, err := uuid.Parse(r.PathValue("jobId"))
	if err != nil {
		http.Error(w, "Invalid job id format", http.StatusBadRequest)
		return
	}

	job, err := h.jobs.JobByID(r.Context(), jobID)
	if errors.Is(err, apperrors.ErrNotFound) {
		http.Error(w, "Job not found.", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("error retrieving job", "job_id", jobID, "error", err)
		http.Error(w, "An error occurred while retrieving the job.", http.StatusInternalServerError)
		return
	}

	resp := resultResponse{Job: job}

	if job.Status == models.StatusCompleted && job.CandidateID.Valid {
		candidate, err := h.candidates.CandidateByID(r.Context(), job.CandidateID.UUID)
		if err != nil {
			h.logger.Error("error retrieving candidate", "job_id", jobID, "candidate_id", job.CandidateID.UUID, "error", err)
			http.Error(w, "An error occurred while retrieving the result.", http.StatusInternalServerError)
			return
		}
		resp.Candidate = &candidate.Record
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleParseResume extracts and stores a record within the request.
func (h *APIHandler) HandleParseResume(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()

	u := h.readUpload(w, r)
	if u == nil {
		return
	}

	pages, err := docext.ExtractPages(u.contentType, u.data)
	if errors.Is(err, apperrors.ErrUnsupportedType) {
		http.Error(w, "Unsupported file type.", http.StatusUnsupportedMediaType)
		return
	}
	if err != nil {
		h.logger.Warn("unreadable resume", "file_name", u.fileName, "error", err)
		http.Error(w, "The file could not be read.", http.StatusUnprocessableEntity)
		return
	}

	record, err := h.extractor.Extract(r.Context(), pages)
	if err != nil {
		h.logger.Error("extraction failed", "file_name", u.fileName, "error", err)
		http.Error(w, "Extraction failed, try again later.", http.StatusBadGateway)
		return
	}

	id, err := h.candidates.SaveCandidate(r.Context(), uuid.NullUUID{}, record)
	if err != nil {
		h.logger.Error("failed to save candidate", "error", err)
		http.Error(w, "An error occurred while saving the result.", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, parseResponse{ID: id, Data: record})
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
