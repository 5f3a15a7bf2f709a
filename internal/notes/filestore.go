// Package notes implements FileStore: document content and its metadata
// index kept in a capacity-bounded key-value store.
//
// Content is written before the index entry that references it, so a failed
// upload never leaves the index pointing at missing bytes. List additionally
// hides entries whose content is absent, which covers indexes damaged from
// outside this process.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/kvstore"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/google/uuid"
)

const (
	// Collection tags every record this store writes.
	Collection = "course_notes"

	// IndexKey holds the JSON array of FileRecord.
	IndexKey = "pdfFiles"

	// AcceptedMimeType is the only document type the application uploads.
	AcceptedMimeType = "application/pdf"

	contentSuffix = "_content"
	maxIDAttempts = 3
)

// ContentKey is the key holding the data URL of file id.
func ContentKey(id string) string {
	return id + contentSuffix
}

var (
	newID = func() string { return Collection + "_" + uuid.NewString() }
	now   = time.Now
)

type FileStore struct {
	kv     kvstore.Store
	logger logging.Logger
}

func NewFileStore(kv kvstore.Store, logger logging.Logger) *FileStore {
	return &FileStore{kv: kv, logger: logger.With("component", "filestore")}
}

// Upload stores body as a new document and returns its record.
//
// The content is written first. If that write is rejected for capacity the
// error matches common.ErrCapacityExceeded; in every failure case the
// content key is removed again and the index is left as it was.
func (s *FileStore) Upload(ctx context.Context, name, mimeType string, body io.Reader) (*FileRecord, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	id, err := s.freshID(ctx)
	if err != nil {
		return nil, err
	}

	rec := FileRecord{
		ID:         id,
		Name:       name,
		MimeType:   mimeType,
		SizeBytes:  int64(len(data)),
		CreatedAt:  now().UTC(),
		Collection: Collection,
	}
	key := ContentKey(id)

	if err := s.kv.Set(ctx, key, encodeDataURL(mimeType, data)); err != nil {
		s.removeContent(ctx, key)
		return nil, storeError("error storing file content", err)
	}

	records, err := s.readIndex(ctx)
	if err != nil {
		s.removeContent(ctx, key)
		return nil, err
	}

	records = append(records, rec)
	if err := s.writeIndex(ctx, records); err != nil {
		s.removeContent(ctx, key)
		return nil, err
	}

	s.logger.Info(ctx, "file uploaded", "id", rec.ID, "name", rec.Name, "size", rec.SizeBytes)
	return &rec, nil
}

// List returns the records of this collection whose content is present, in
// upload order. An absent or unreadable index yields an empty list.
func (s *FileStore) List(ctx context.Context) []FileRecord {
	records, err := s.readIndex(ctx)
	if err != nil {
		s.logger.Warn(ctx, "treating unreadable index as empty", "error", err)
		return []FileRecord{}
	}

	result := make([]FileRecord, 0, len(records))
	for _, r := range records {
		if r.Collection != Collection {
			continue
		}
		ok, err := s.kv.Has(ctx, ContentKey(r.ID))
		if err != nil {
			s.logger.Warn(ctx, "content check failed", "id", r.ID, "error", err)
			continue
		}
		if !ok {
			s.logger.Debug(ctx, "hiding record without content", "id", r.ID)
			continue
		}
		result = append(result, r)
	}
	return result
}

// Search filters List by a case-insensitive substring of the file name.
// A blank query matches everything.
func (s *FileStore) Search(ctx context.Context, query string) []FileRecord {
	all := s.List(ctx)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}

	result := make([]FileRecord, 0, len(all))
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.Name), q) {
			result = append(result, r)
		}
	}
	return result
}

// Get returns the record and content of id. It fails with
// common.ErrNotFound when the index has no such id and with
// common.ErrContentMissing when the content key is absent or unreadable.
func (s *FileStore) Get(ctx context.Context, id string) (*File, error) {
	records, err := s.readIndex(ctx)
	if err != nil {
		return nil, err
	}

	var rec *FileRecord
	for i := range records {
		if records[i].ID == id {
			rec = &records[i]
			break
		}
	}
	if rec == nil {
		return nil, common.ErrNotFound
	}

	url, ok, err := s.kv.Get(ctx, ContentKey(id))
	if err != nil {
		return nil, fmt.Errorf("error loading file content: %w", err)
	}
	if !ok || url == "" {
		return nil, common.ErrContentMissing
	}

	_, data, err := decodeDataURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrContentMissing, err)
	}

	return &File{FileRecord: *rec, Content: data, URL: url}, nil
}

// Delete removes id from the index and drops its content. Deleting an
// unknown id succeeds without touching the index.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	records, err := s.readIndex(ctx)
	if err != nil {
		return err
	}

	kept := make([]FileRecord, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	if len(kept) != len(records) {
		if err := s.writeIndex(ctx, kept); err != nil {
			return err
		}
	}

	if err := s.kv.Delete(ctx, ContentKey(id)); err != nil {
		return fmt.Errorf("error deleting file content: %w", err)
	}

	s.logger.Info(ctx, "file deleted", "id", id)
	return nil
}

// Prune repairs divergence between index and content: it drops index
// entries whose content is gone and removes content keys of this collection
// that no index entry references.
func (s *FileStore) Prune(ctx context.Context) (PruneReport, error) {
	var report PruneReport

	records, err := s.readIndex(ctx)
	if err != nil {
		return report, err
	}

	kept := make([]FileRecord, 0, len(records))
	indexed := make(map[string]struct{}, len(records))
	for _, r := range records {
		ok, err := s.kv.Has(ctx, ContentKey(r.ID))
		if err != nil {
			return report, fmt.Errorf("error checking file content: %w", err)
		}
		if !ok {
			report.DroppedRecords = append(report.DroppedRecords, r.ID)
			continue
		}
		kept = append(kept, r)
		indexed[r.ID] = struct{}{}
	}

	if len(report.DroppedRecords) > 0 {
		if err := s.writeIndex(ctx, kept); err != nil {
			return report, err
		}
	}

	keys, err := s.kv.Keys(ctx)
	if err != nil {
		return report, fmt.Errorf("error listing keys: %w", err)
	}
	for _, k := range keys {
		id, ok := strings.CutSuffix(k, contentSuffix)
		if !ok || !strings.HasPrefix(id, Collection+"_") {
			continue
		}
		if _, ok := indexed[id]; ok {
			continue
		}
		if err := s.kv.Delete(ctx, k); err != nil {
			return report, fmt.Errorf("error deleting orphaned content: %w", err)
		}
		report.OrphanedContent = append(report.OrphanedContent, k)
	}

	if len(report.DroppedRecords)+len(report.OrphanedContent) > 0 {
		s.logger.Info(ctx, "storage pruned",
			"dropped_records", len(report.DroppedRecords),
			"orphaned_content", len(report.OrphanedContent))
	}
	return report, nil
}

// Usage reports how much of the underlying store is used.
func (s *FileStore) Usage(ctx context.Context) (kvstore.Usage, error) {
	return s.kv.Usage(ctx)
}

func (s *FileStore) freshID(ctx context.Context) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := newID()
		taken, err := s.kv.Has(ctx, ContentKey(id))
		if err != nil {
			return "", fmt.Errorf("error checking id: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", errors.New("could not allocate a unique file id")
}

// readIndex loads the index. Entries that do not decode or carry no id are
// dropped; an index that is not a JSON array is reported as
// common.ErrCorruptIndex.
func (s *FileStore) readIndex(ctx context.Context) ([]FileRecord, error) {
	raw, ok, err := s.kv.Get(ctx, IndexKey)
	if err != nil {
		return nil, fmt.Errorf("error loading index: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []FileRecord{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptIndex, err)
	}

	records := make([]FileRecord, 0, len(items))
	for i, item := range items {
		var r FileRecord
		if err := json.Unmarshal(item, &r); err != nil || r.ID == "" {
			s.logger.Warn(ctx, "dropping malformed index entry", "position", i)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *FileStore) writeIndex(ctx context.Context, records []FileRecord) error {
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("error encoding index: %w", err)
	}
	if err := s.kv.Set(ctx, IndexKey, string(b)); err != nil {
		return storeError("error storing index", err)
	}
	return nil
}

func (s *FileStore) removeContent(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Error(ctx, "failed to remove content after failed upload", "key", key, "error", err)
	}
}

func storeError(msg string, err error) error {
	if errors.Is(err, kvstore.ErrQuotaExceeded) {
		return fmt.Errorf("%w: %w", common.ErrCapacityExceeded, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
