package service

import (
	"errors"
	"strings"

	"github.com/gogotex/docsign/internal/document"
	"github.com/gogotex/docsign/internal/document/repository"
	"github.com/gogotex/docsign/pkg/logger"
	"github.com/gogotex/docsign/pkg/metrics"
)

var (
	ErrNotFound          = errors.New("document not found")
	ErrContentRequired   = errors.New("content is required")
	ErrSignatureRequired = errors.New("signature is required")
	// ErrNotSignable covers both a missing document and one already signed.
	ErrNotSignable = errors.New("document not found or already signed")
)

// Service defines the document business operations used by the handler layer.
type Service interface {
	List() []document.Document
	Get(id string) (document.Document, error)
	Create(content string) (document.Document, error)
	Sign(id, signature string) error
	Count() int
}

// Registry is the storage the service delegates to. It never fails; it only
// reports boolean outcomes.
type Registry interface {
	List() []document.Document
	Get(id string) (document.Document, bool)
	Create(content string) document.Document
	Sign(id, signature string) bool
	Len() int
}

// NewMemoryService returns a Service backed by the in-memory registry.
func NewMemoryService(opts ...repository.Option) *DocumentService {
	return New(repository.NewMemoryRepo(opts...))
}

func New(reg Registry) *DocumentService {
	return &DocumentService{reg: reg}
}

type DocumentService struct {
	reg Registry
}

func (s *DocumentService) List() []document.Document {
	return s.reg.List()
}

func (s *DocumentService) Get(id string) (document.Document, error) {
	d, ok := s.reg.Get(id)
	if !ok {
		return document.Document{}, ErrNotFound
	}
	return d, nil
}

// Create stores content as given; only blank content is rejected.
func (s *DocumentService) Create(content string) (document.Document, error) {
	if strings.TrimSpace(content) == "" {
		return document.Document{}, ErrContentRequired
	}
	d := s.reg.Create(content)
	metrics.DocumentsCreated.Inc()
	logger.Infof("document created: id=%s size=%d", d.ID, len(d.Content))
	return d, nil
}

func (s *DocumentService) Sign(id, signature string) error {
	if strings.TrimSpace(signature) == "" {
		metrics.SignRejected.WithLabelValues("validation").Inc()
		return ErrSignatureRequired
	}
	if !s.reg.Sign(id, signature) {
		metrics.SignRejected.WithLabelValues("conflict").Inc()
		logger.Debugf("sign rejected: id=%s not found or already signed", id)
		return ErrNotSignable
	}
	metrics.DocumentsSigned.Inc()
	logger.Infof("document signed: id=%s", id)
	return nil
}

func (s *DocumentService) Count() int {
	return s.reg.Len()
}
