package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"sync"

	"berserkfit/internal/models"
	"berserkfit/internal/notify"
	"berserkfit/internal/repositories"
	"berserkfit/pkg/objectstore"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ImagePathPrefix is where product images live in object storage.
// Paths are keyed by the original filename, so a same-named file
// silently replaces the stored object.
const ImagePathPrefix = "images/"

// StagedFile is a file selected for upload but not yet uploaded.
type StagedFile struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// SubmitRequest carries one editor submission: all product fields plus
// the two independent image slots. A nil staged file means the slot
// keeps its current URL; an empty ID means a new product.
type SubmitRequest struct {
	ID            string
	Name          string
	Price         float64
	Discount      float64
	Sizes         []string
	Category      string
	Image         *StagedFile
	HoverImage    *StagedFile
	ImageURL      string
	HoverImageURL string
}

// EditorService runs the product edit pipeline: upload staged images,
// resolve their public URLs, compose and validate the full record,
// persist it, and hand the result to the completion callback.
type EditorService struct {
	productRepo repositories.ProductRepository
	store       objectstore.ObjectStore
	notifier    notify.Notifier
	validate    *validator.Validate
	onSubmit    func(*models.Product)

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewEditorService creates a new EditorService. onSubmit may be nil;
// when set it is called with the composed record after a successful
// persist.
func NewEditorService(productRepo repositories.ProductRepository, store objectstore.ObjectStore, notifier notify.Notifier, onSubmit func(*models.Product)) *EditorService {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &EditorService{
		productRepo: productRepo,
		store:       store,
		notifier:    notifier,
		validate:    validator.New(),
		onSubmit:    onSubmit,
	}
}

// Submit runs one submission end to end. Only one submission per
// product may be in flight at a time; the flag is released on every
// exit path. On failure the caller keeps its field state and may
// retry — nothing is partially committed except already-uploaded
// images, which are harmless orphans until a later submit reuses the
// path.
func (s *EditorService) Submit(ctx context.Context, req SubmitRequest) (*models.Product, error) {
	isNew := req.ID == ""
	if isNew {
		req.ID = uuid.New().String()
	}

	if !s.acquire(req.ID) {
		return nil, fmt.Errorf("%w: product %s", ErrSubmitInFlight, req.ID)
	}
	defer s.release(req.ID)

	imageURL, hoverImageURL, err := s.uploadStaged(ctx, &req)
	if err != nil {
		log.Printf("Failed to upload images for product %s: %v", req.ID, err)
		s.notifier.Failure("Image upload failed. Please try again.")
		return nil, err
	}

	product := &models.Product{
		ID:         req.ID,
		Name:       req.Name,
		Price:      req.Price,
		Discount:   req.Discount,
		Sizes:      models.JoinSizes(req.Sizes),
		Category:   req.Category,
		Image:      imageURL,
		HoverImage: hoverImageURL,
	}
	if err := s.validate.Struct(product); err != nil {
		return nil, err
	}

	if isNew {
		err = s.productRepo.Create(product)
	} else {
		err = s.productRepo.Update(product)
	}
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
		log.Printf("Failed to update product %s: %v", req.ID, err)
		s.notifier.Failure("Saving the product failed. Please try again.")
		return nil, wrapped
	}

	s.notifier.Success(fmt.Sprintf("Product %q saved.", product.Name))
	if s.onSubmit != nil {
		s.onSubmit(product)
	}
	return product, nil
}

// uploadStaged uploads whichever slots carry a staged file, in
// parallel, and returns the resolved URL per slot. Unstaged slots keep
// the URL the request came in with.
func (s *EditorService) uploadStaged(ctx context.Context, req *SubmitRequest) (string, string, error) {
	imageURL := req.ImageURL
	hoverImageURL := req.HoverImageURL

	g, ctx := errgroup.WithContext(ctx)
	if req.Image != nil {
		file := req.Image
		g.Go(func() error {
			url, err := s.uploadImage(ctx, file)
			if err != nil {
				return err
			}
			imageURL = url
			return nil
		})
	}
	if req.HoverImage != nil {
		file := req.HoverImage
		g.Go(func() error {
			url, err := s.uploadImage(ctx, file)
			if err != nil {
				return err
			}
			hoverImageURL = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return imageURL, hoverImageURL, nil
}

// uploadImage writes one staged file to object storage and resolves
// its public URL.
func (s *EditorService) uploadImage(ctx context.Context, file *StagedFile) (string, error) {
	objectPath := ImagePathPrefix + path.Base(file.Name)
	if err := s.store.Upload(ctx, objectPath, file.Reader, file.Size, file.ContentType); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUploadFailure, file.Name, err)
	}
	return s.store.PublicURL(objectPath), nil
}

func (s *EditorService) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight == nil {
		s.inFlight = make(map[string]struct{})
	}
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *EditorService) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}
