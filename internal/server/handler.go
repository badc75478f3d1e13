package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"skillfit/internal/analysis"
	"skillfit/internal/config"
	skillfitErrors "skillfit/internal/errors"
	"skillfit/internal/observability"
	"skillfit/internal/types"
	"skillfit/internal/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// createAnalyzeHandler wraps the analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("skillfit.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		if requestID := requestIDFromContext(ctx); requestID != "" {
			span.SetAttributes(attribute.String("request.id", requestID))
		}

		// Parse request
		var req types.AnalyzeInput
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := req.Validate(); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request", err.Error(), http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("resume_text exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}
		if len(req.JobDescriptionText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescriptionText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("job_description_text exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescriptionText)),
			attribute.String("operation", "analyze"),
		)

		service := analysis.NewService(config.Vocabulary(), s.Logger)

		// Track the analysis with observability and score recording
		metrics := om.GetMetrics()
		var result *types.AnalysisResult
		err := metrics.TrackAnalysis(ctx, "analyze", func(ctx context.Context) *observability.AnalysisOutcome {
			result = service.Analyze(ctx, req.ResumeText, req.JobDescriptionText)
			return &observability.AnalysisOutcome{
				Scores: scoreSample(result),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			metrics.RecordBusinessMetric(ctx, "match_analyzed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze match", err.Error(), http.StatusInternalServerError)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "match_analyzed", true, om,
			attribute.Float64("score.overall", result.OverallMatchScore),
			attribute.Int("skills.matched", len(result.SkillsMatch.MatchedSkills)),
			attribute.Int("skills.missing", len(result.SkillsMatch.MissingSkills)))

		recordResultSpan(span, result)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createUploadResumeHandler wraps the resume upload handler with observability
func (s *Server) createUploadResumeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("skillfit.api")
		ctx, span := tracer.Start(ctx, "api.upload_resume")
		defer span.End()

		if requestID := requestIDFromContext(ctx); requestID != "" {
			span.SetAttributes(attribute.String("request.id", requestID))
		}

		filename, data, size, ok := s.readUploadedFile(w, r, span)
		if !ok {
			return
		}

		fileType := uploadFileType(filename)
		span.SetAttributes(
			attribute.String("file.name", filename),
			attribute.String("file.type", fileType),
			attribute.Int64("file.size", size),
			attribute.String("operation", "upload_resume"),
		)

		s.Logger.Info("Resume upload received",
			"file_name", filename,
			"file_size", utils.FormatFileSize(size),
			"request_id", requestIDFromContext(ctx))

		service := analysis.NewService(config.Vocabulary(), s.Logger)

		// Track extraction with observability
		metrics := om.GetMetrics()
		var text string
		err := metrics.TrackExtraction(ctx, fileType, func(ctx context.Context) error {
			var extractErr error
			text, extractErr = service.ExtractText(ctx, filename, data)
			return extractErr
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			metrics.RecordBusinessMetric(ctx, "resume_extracted", false, om,
				attribute.String("file.type", fileType))
			writeErrorResponse(w, skillfitErrors.UserMessage(err), "", http.StatusBadRequest)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_extracted", true, om,
			attribute.String("file.type", fileType),
			attribute.Int("text.length", len(text)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.text_length", len(text)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.ExtractionResult{ExtractedText: text}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createUploadAndAnalyzeHandler wraps the combined upload and analyze handler
// with observability. Extraction failures still produce a 200 response with a
// zeroed analysis so clients always get the full result shape.
func (s *Server) createUploadAndAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("skillfit.api")
		ctx, span := tracer.Start(ctx, "api.upload_and_analyze")
		defer span.End()

		if requestID := requestIDFromContext(ctx); requestID != "" {
			span.SetAttributes(attribute.String("request.id", requestID))
		}

		filename, data, size, ok := s.readUploadedFile(w, r, span)
		if !ok {
			return
		}

		jobText := r.FormValue("job_description_text")
		if strings.TrimSpace(jobText) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "form field 'job_description_text' is required", http.StatusBadRequest)
			return
		}

		fileType := uploadFileType(filename)
		span.SetAttributes(
			attribute.String("file.name", filename),
			attribute.String("file.type", fileType),
			attribute.Int64("file.size", size),
			attribute.Int("request.job_length", len(jobText)),
			attribute.String("operation", "upload_and_analyze"),
		)

		s.Logger.Info("Resume upload received",
			"file_name", filename,
			"file_size", utils.FormatFileSize(size),
			"request_id", requestIDFromContext(ctx))

		service := analysis.NewService(config.Vocabulary(), s.Logger)

		metrics := om.GetMetrics()
		var result *types.UploadAnalysisResult
		err := metrics.TrackAnalysis(ctx, "upload_and_analyze", func(ctx context.Context) *observability.AnalysisOutcome {
			result = service.ExtractAndAnalyze(ctx, filename, data, jobText)
			return &observability.AnalysisOutcome{
				Scores: scoreSample(&result.AnalysisResult),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "analysis"))
			metrics.RecordBusinessMetric(ctx, "match_analyzed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze match", err.Error(), http.StatusInternalServerError)
			return
		}

		extracted := result.ExtractedText != ""
		metrics.RecordBusinessMetric(ctx, "resume_extracted", extracted, om,
			attribute.String("file.type", fileType))
		metrics.RecordBusinessMetric(ctx, "match_analyzed", true, om,
			attribute.Float64("score.overall", result.OverallMatchScore),
			attribute.Int("skills.matched", len(result.SkillsMatch.MatchedSkills)),
			attribute.Int("skills.missing", len(result.SkillsMatch.MissingSkills)))

		recordResultSpan(span, &result.AnalysisResult)
		span.SetAttributes(attribute.Bool("extraction.ok", extracted))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// readUploadedFile pulls the multipart "file" field out of an upload request.
// On failure it writes the error response itself and returns ok=false.
func (s *Server) readUploadedFile(w http.ResponseWriter, r *http.Request, span trace.Span) (filename string, data []byte, size int64, ok bool) {
	file, header, err := r.FormFile("file")
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeErrorResponse(w, "Request body too large", fmt.Sprintf("upload exceeds size limit of %d bytes", maxBytesErr.Limit), http.StatusBadRequest)
			return "", nil, 0, false
		}
		writeErrorResponse(w, "Missing file upload", "multipart form field 'file' is required", http.StatusBadRequest)
		return "", nil, 0, false
	}
	defer func() { _ = file.Close() }()

	data, err = io.ReadAll(file)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "upload_read"))
		writeErrorResponse(w, "Failed to read upload", err.Error(), http.StatusInternalServerError)
		return "", nil, 0, false
	}

	return utils.SafeBaseName(header.Filename), data, header.Size, true
}

// uploadFileType derives a short type label from an uploaded filename
func uploadFileType(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// scoreSample copies the headline scores of a result for metric recording
func scoreSample(result *types.AnalysisResult) *observability.ScoreSample {
	return &observability.ScoreSample{
		Overall:    result.OverallMatchScore,
		SkillMatch: result.SkillMatchPercentage,
		Similarity: result.TextSimilarityScore,
	}
}

// recordResultSpan attaches the headline scores of a completed analysis to a span
func recordResultSpan(span trace.Span, result *types.AnalysisResult) {
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Float64("response.overall_score", result.OverallMatchScore),
		attribute.Float64("response.skill_match_pct", result.SkillMatchPercentage),
		attribute.Float64("response.similarity", result.TextSimilarityScore),
	)
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
