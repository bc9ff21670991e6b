// Package services holds the document workflows that span object
// storage and the database, and the mail deep-link builder.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"clientdesk/internal/models"
	"clientdesk/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DocumentsBucket is the bucket every document upload lands in.
const DocumentsBucket = "documents"

// ErrNoFile is returned when an upload is submitted without a file,
// before any storage or database call is made.
var ErrNoFile = errors.New("Please select a file to upload")

const cacheControl = "max-age=3600"

// DocumentService owns the two-step document operations. Upload is
// compensated: a failed metadata insert removes the stored object.
// Delete is strictly sequential: the row is only deleted after the
// object removal succeeded.
type DocumentService struct {
	db    *gorm.DB
	store storage.ObjectStore
	log   *logrus.Logger
}

// NewDocumentService creates the service.
func NewDocumentService(db *gorm.DB, store storage.ObjectStore, log *logrus.Logger) *DocumentService {
	return &DocumentService{db: db, store: store, log: log}
}

// UploadInput carries one document upload.
type UploadInput struct {
	ClientID     uint
	EmployeeID   uint
	DocumentType string
	Description  string
	FileName     string
	File         io.Reader
	// KeyOwner is the ID the object key is prefixed with: the uploader
	// on the client-profile form, the client on the standalone form.
	KeyOwner uint
}

// Upload stores the file and inserts its metadata row. The returned
// error's message is shown to the user; upload is the one flow whose
// failures are surfaced rather than just logged.
func (s *DocumentService) Upload(ctx context.Context, in UploadInput) (*models.Document, error) {
	if in.File == nil || in.FileName == "" {
		return nil, ErrNoFile
	}
	if !models.ValidDocumentType(in.DocumentType) {
		return nil, fmt.Errorf("unknown document type %q", in.DocumentType)
	}

	data, err := io.ReadAll(in.File)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoFile
	}

	if err := storage.EnsureBucket(ctx, s.store, DocumentsBucket); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	contentType := mimetype.Detect(data).String()
	key := objectKey(in.KeyOwner, in.FileName)
	err = s.store.Upload(ctx, DocumentsBucket, key, bytes.NewReader(data), storage.UploadOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
	})
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	doc := &models.Document{
		ClientID:     in.ClientID,
		EmployeeID:   in.EmployeeID,
		DocumentType: in.DocumentType,
		Description:  in.Description,
		FileName:     in.FileName,
		FilePath:     key,
		FileURL:      s.store.PublicURL(DocumentsBucket, key),
		FileType:     contentType,
		FileSize:     int64(len(data)),
	}
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		// Compensate: don't leave an orphaned object behind.
		if rmErr := s.store.Remove(ctx, DocumentsBucket, key); rmErr != nil {
			s.log.WithError(rmErr).WithField("key", key).Error("rollback of stored object failed")
		}
		return nil, fmt.Errorf("save document: %w", err)
	}
	return doc, nil
}

// Delete removes the stored object, then the metadata row. When the
// object removal fails the row is left untouched.
func (s *DocumentService) Delete(ctx context.Context, documentID uint) error {
	var doc models.Document
	if err := s.db.WithContext(ctx).First(&doc, documentID).Error; err != nil {
		return err
	}

	if err := s.store.Remove(ctx, DocumentsBucket, doc.FilePath); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("remove stored object: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&doc).Error; err != nil {
		return fmt.Errorf("delete document row: %w", err)
	}
	return nil
}

// objectKey builds "<owner>/<unixts>_<uuid><ext>"; the uuid keeps keys
// collision-free under overwrite protection.
func objectKey(owner uint, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%d/%d_%s%s", owner, time.Now().Unix(), uuid.NewString(), ext)
}
