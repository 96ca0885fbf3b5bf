package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studynotes/internal/common"
	"github.com/dmitrijs2005/studynotes/internal/extract"
	"github.com/dmitrijs2005/studynotes/internal/logging"
	"github.com/dmitrijs2005/studynotes/internal/report"
	"github.com/dmitrijs2005/studynotes/internal/server/config"
	"github.com/dmitrijs2005/studynotes/internal/server/models"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/studynotes/internal/server/storage"
	"github.com/dmitrijs2005/studynotes/internal/textproc"
)

// Upload is one submitted document.
type Upload struct {
	Filename string
	Branch   string
	Subject  string
	Data     []byte
}

// DocumentService turns uploads into history records and renders reports.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.BlobStore
	extractor   *extract.Extractor
	opts        textproc.Options
	log         logging.Logger
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, store storage.BlobStore, cfg *config.Config, log logging.Logger) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: m,
		store:       store,
		extractor:   extract.NewExtractor(cfg.MaxPDFPages),
		opts: textproc.Options{
			SummarySentences:  cfg.SummarySentences,
			SentenceWindow:    cfg.SentenceWindow,
			QuestionLimit:     cfg.QuestionLimit,
			QuestionMinLength: cfg.QuestionMinLength,
		},
		log: log.With("module", "documents"),
	}
}

// Process extracts text from up, derives the summary and questions, keeps
// the uploaded file in blob storage and records the result for the session's
// user.
//
// Errors: common.ErrEmptyFilename, common.ErrUnsupportedFileType,
// common.ErrUnreadableDocument, common.ErrEmptyText, common.ErrorInternal.
func (s *DocumentService) Process(ctx context.Context, sess *Session, up Upload) (*models.History, error) {
	if up.Filename == "" {
		return nil, common.ErrEmptyFilename
	}
	if !extract.Allowed(up.Filename) {
		return nil, common.ErrUnsupportedFileType
	}

	text, err := s.extractor.Extract(ctx, up.Filename, up.Data)
	if err != nil {
		if errors.Is(err, common.ErrUnreadableDocument) {
			s.log.Warn(ctx, "unreadable document", "filename", up.Filename, "error", err)
			return nil, common.ErrUnreadableDocument
		}
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrEmptyText
	}

	res := textproc.Process(text, s.opts)

	key := storage.NewKey(up.Filename)
	if err := s.store.Put(ctx, key, up.Data); err != nil {
		s.log.Error(ctx, "store upload failed", "key", key, "error", err)
		return nil, common.ErrorInternal
	}

	h, err := s.repomanager.Histories(s.db).Create(ctx, &models.History{
		UserID:     sess.UserID,
		Email:      sess.Email,
		Branch:     up.Branch,
		Subject:    up.Subject,
		Filename:   up.Filename,
		StorageKey: key,
		Summary:    res.Summary,
		Questions:  res.Questions,
	})
	if err != nil {
		s.log.Error(ctx, "save history failed", "error", err)
		if derr := s.store.Delete(ctx, key); derr != nil {
			s.log.Warn(ctx, "orphaned upload", "key", key, "error", derr)
		}
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "upload processed",
		"user_id", sess.UserID, "filename", up.Filename, "questions", len(res.Questions))
	return h, nil
}

// ListHistory returns the user's records, newest first.
func (s *DocumentService) ListHistory(ctx context.Context, userID string) ([]*models.History, error) {
	list, err := s.repomanager.Histories(s.db).ListByUser(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "list history failed", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

// LatestReport renders the user's most recent record as a PDF. Without any
// record it returns common.ErrorNotFound.
func (s *DocumentService) LatestReport(ctx context.Context, userID string) ([]byte, error) {
	h, err := s.repomanager.Histories(s.db).LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.log.Error(ctx, "load latest history failed", "error", err)
		return nil, common.ErrorInternal
	}

	pdf, err := report.Render(report.Document{
		Branch:    h.Branch,
		Subject:   h.Subject,
		Summary:   h.Summary,
		Questions: h.Questions,
	})
	if err != nil {
		s.log.Error(ctx, "render report failed", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return pdf, nil
}
