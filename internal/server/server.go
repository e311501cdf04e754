// Package server exposes the parser and the comparison renderer over HTTP.
package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tsawler/redline"
	"github.com/tsawler/redline/format"
	"github.com/tsawler/redline/internal/config"
	"github.com/tsawler/redline/internal/logging"
	"github.com/tsawler/redline/ocr"
	"github.com/tsawler/redline/parse"
)

type Server struct {
	cfg    *config.Config
	parser *parse.Parser
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Logger()
	}
	return &Server{
		cfg: cfg,
		parser: parse.New(parse.Options{
			StripMarkdown: cfg.Parser.StripMarkdown,
			OCRLanguage:   cfg.Parser.OCRLanguage,
		}),
		logger: logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestIDMiddleware())
	r.Use(logging.LoggingMiddleware(s.logger))

	r.GET("/health", s.Health)
	r.POST("/parse", s.Parse)
	r.POST("/generate", s.Generate)

	return r
}

// Run serves on the configured address until the listener fails.
func (s *Server) Run() error {
	if !s.cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s.logger.Info("starting server", "addr", s.cfg.Addr(), "ocr_enabled", ocr.Enabled)
	return s.SetupRouter().Run(s.cfg.Addr())
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ParseRequest struct {
	FileContent string `json:"file_content"`
	FileType    string `json:"file_type" binding:"required"`
}

type ParseResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func (s *Server) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request"})
		return
	}
	if format.ParseType(req.FileType) == format.Unknown {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("Unsupported file type: %s", req.FileType)})
		return
	}

	c.JSON(http.StatusOK, s.parse(c, req))
}

func (s *Server) parse(c *gin.Context, req ParseRequest) (resp ParseResponse) {
	log := logging.FromContext(c.Request.Context(), s.logger)

	defer func() {
		if r := recover(); r != nil {
			log.Error("parse panicked", "file_type", req.FileType, "panic", r)
			resp = ParseResponse{Error: fmt.Sprintf("Failed to parse document: %v", r)}
		}
	}()

	if req.FileContent == "" {
		return ParseResponse{Error: "File content is empty"}
	}

	data, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		return ParseResponse{Error: fmt.Sprintf("Invalid base64 encoding: %v", err)}
	}
	if limit := s.cfg.MaxFileSizeBytes(); int64(len(data)) > limit {
		return ParseResponse{Error: fmt.Sprintf("File too large. Maximum size is %d MB", s.cfg.Server.MaxFileSizeMB)}
	}

	text, err := s.parser.Parse(data, req.FileType)
	if err != nil {
		var perr *parse.Error
		if errors.As(err, &perr) {
			log.Info("parse rejected", "file_type", req.FileType, "kind", perr.Kind.String(), "size", len(data))
			return ParseResponse{Error: perr.Message}
		}
		log.Error("parse failed", "file_type", req.FileType, "error", err)
		return ParseResponse{Error: fmt.Sprintf("Failed to parse document: %v", err)}
	}

	log.Debug("parsed document", "file_type", req.FileType, "size", len(data), "chars", len(text))
	return ParseResponse{Text: text}
}

type GenerateRequest struct {
	Original    string               `json:"original"`
	Corrected   string               `json:"corrected"`
	FactChanges []redline.FactChange `json:"fact_changes"`
}

type GenerateResponse struct {
	CleanDoc string `json:"clean_doc"`
	DiffDoc  string `json:"diff_doc"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request"})
		return
	}

	c.JSON(http.StatusOK, s.generate(c, req))
}

func (s *Server) generate(c *gin.Context, req GenerateRequest) (resp GenerateResponse) {
	log := logging.FromContext(c.Request.Context(), s.logger)

	defer func() {
		if r := recover(); r != nil {
			log.Error("generate panicked", "panic", r)
			resp = GenerateResponse{Error: fmt.Sprintf("Failed to generate documents: %v", r)}
		}
	}()

	if req.Original == "" && req.Corrected == "" {
		return GenerateResponse{Error: "Both original and corrected texts are empty"}
	}

	clean, diffDoc, err := redline.Compare(req.Original, req.Corrected).
		Facts(req.FactChanges...).
		Threshold(s.cfg.Diff.SimilarityThreshold).
		Logger(log).
		Generate()
	if err != nil {
		log.Error("generate failed", "error", err)
		return GenerateResponse{Error: fmt.Sprintf("Failed to generate documents: %v", err)}
	}

	return GenerateResponse{
		CleanDoc: base64.StdEncoding.EncodeToString(clean),
		DiffDoc:  base64.StdEncoding.EncodeToString(diffDoc),
	}
}
