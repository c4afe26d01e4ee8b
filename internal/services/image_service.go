package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"redheart/internal/domain"
	"redheart/internal/events"
	"redheart/internal/export"
	"redheart/internal/repos"
	"redheart/internal/storage"
	"redheart/internal/validate"
)

const (
	MsgFillRequired    = "Please fill all required fields and select an image."
	MsgImageUploadFail = "Image upload failed. Please try again."
	MsgNeedProductID   = "Please enter a Product ID first."
	MsgNeedOneImage    = "Please upload at least one image before exporting to Excel."
	MsgExportFailed    = "Failed to export Excel file. Please try again."
	MsgImageUploadBusy = "An upload is already in progress."
)

var (
	ErrFillRequired = &validate.Problem{Msg: MsgFillRequired}
	ErrNeedProduct  = &validate.Problem{Msg: MsgNeedProductID}
	ErrNeedImage    = &validate.Problem{Msg: MsgNeedOneImage}
)

// ImageFile is one uploaded image as it arrived on the form.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ImageUpload struct {
	ProductID string
	Slot      string
	UploadID  string
	File      *ImageFile
}

type ImageService struct {
	Store    storage.ObjectStore
	Progress *storage.ProgressTracker
	Slots    *repos.ImageSlotRepo
	Exports  *repos.ExportRepo
	Events   events.Publisher
	Busy     *BusyID
	Now      func() time.Time
}

func NewImageService(store storage.ObjectStore, progress *storage.ProgressTracker, slots *repos.ImageSlotRepo, exports *repos.ExportRepo, pub events.Publisher) *ImageService {
	return &ImageService{
		Store:    store,
		Progress: progress,
		Slots:    slots,
		Exports:  exports,
		Events:   pub,
		Busy:     NewBusyID(PolicyParallel),
		Now:      time.Now,
	}
}

// Current is the session's slot set.
func (s *ImageService) Current(sessionID string) (domain.SlotSet, error) {
	return s.Slots.Get(sessionID)
}

// Upload validates the form, stores the image and records its URL in the
// session's slot set. Nothing reaches the store unless every check passes.
func (s *ImageService) Upload(ctx context.Context, actor, sessionID string, in ImageUpload) (string, domain.SlotSet, error) {
	pid, okID := validate.ProductID(in.ProductID)
	slot, okSlot := validate.Slot(in.Slot)
	if !okID || !okSlot || in.File == nil || in.File.Body == nil {
		return "", domain.SlotSet{}, ErrFillRequired
	}
	if err := validate.ImageFile(in.File.ContentType, in.File.Size); err != nil {
		return "", domain.SlotSet{}, err
	}
	// one upload per session; a second tab waits for the first
	release, err := s.Busy.Acquire(sessionID)
	if err != nil {
		return "", domain.SlotSet{}, err
	}
	defer release()

	body := in.File.Body
	if in.UploadID != "" {
		s.Progress.Start(in.UploadID, in.File.Size)
		body = s.Progress.Reader(in.UploadID, body)
	}
	key := storage.ObjectKey(pid, string(slot), in.File.Filename, s.Now())
	url, err := s.Store.Put(ctx, key, body, in.File.Size, in.File.ContentType)
	if in.UploadID != "" {
		s.Progress.Finish(in.UploadID, err)
	}
	if err != nil {
		return "", domain.SlotSet{}, fmt.Errorf("put %s: %w", key, err)
	}

	set, err := s.Slots.Get(sessionID)
	if err != nil {
		return url, domain.SlotSet{}, err
	}
	set = set.Record(pid, slot, url)
	if err := s.Slots.Save(sessionID, set); err != nil {
		return url, set, err
	}
	publish(ctx, s.Events, events.New(events.ImageUploaded, "product_image", pid, actor, map[string]any{
		"slot": string(slot),
		"url":  url,
		"key":  key,
	}))
	return url, set, nil
}

func (s *ImageService) Reset(sessionID string) error {
	return s.Slots.Clear(sessionID)
}

// Export renders the session's slots for productID as a workbook. The product id
// check comes first, then the at-least-one-image check.
func (s *ImageService) Export(sessionID, productID string) (string, []byte, error) {
	pid := strings.TrimSpace(productID)
	set, err := s.Slots.Get(sessionID)
	if err != nil {
		return "", nil, err
	}
	if pid == "" {
		pid = set.ProductID
	}
	if pid == "" {
		return "", nil, ErrNeedProduct
	}
	if set.ProductID != pid || !set.HasAny() {
		return "", nil, ErrNeedImage
	}

	var buf bytes.Buffer
	if err := export.WriteProductImages(&buf, set); err != nil {
		return "", nil, fmt.Errorf("write workbook: %w", err)
	}
	name := export.Filename(pid, s.Now())
	if err := s.Exports.Record(sessionID, pid, name); err != nil {
		return "", nil, err
	}
	return name, buf.Bytes(), nil
}

func (s *ImageService) RecentExports(limit int) ([]repos.ExportRecord, error) {
	return s.Exports.ListRecent(limit)
}

func (s *ImageService) ProgressOf(uploadID string) (storage.Progress, bool) {
	return s.Progress.Get(uploadID)
}
