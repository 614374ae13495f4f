package services_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"berserkfit/internal/models"
	"berserkfit/internal/repositories"
	"berserkfit/internal/services"
	"berserkfit/pkg/objectstore"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func stagedFile(name, content string) *services.StagedFile {
	return &services.StagedFile{
		Name:        name,
		Size:        int64(len(content)),
		ContentType: "image/png",
		Reader:      strings.NewReader(content),
	}
}

func existingProduct(t *testing.T, repo repositories.ProductRepository) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:         "p1",
		Name:       "Berserk Tee",
		Price:      100,
		Discount:   25,
		Sizes:      "S,M,L",
		Category:   "gymwear",
		Image:      "https://storage.test/images/tee.png",
		HoverImage: "https://storage.test/images/tee-hover.png",
	}
	assert.NoError(t, repo.Create(p))
	return p
}

func TestEditorService_SubmitWithoutStagedFilesReusesURLs(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	store := objectstore.NewMemoryStore("https://storage.test")
	prior := existingProduct(t, repo)

	service := services.NewEditorService(repo, store, nil, nil)
	product, err := service.Submit(context.Background(), services.SubmitRequest{
		ID:            prior.ID,
		Name:          "Berserk Tee v2",
		Price:         90,
		Discount:      10,
		Sizes:         []string{"S", "M"},
		Category:      "gymwear",
		ImageURL:      prior.Image,
		HoverImageURL: prior.HoverImage,
	})

	assert.NoError(t, err)
	assert.Equal(t, prior.Image, product.Image)
	assert.Equal(t, prior.HoverImage, product.HoverImage)
	assert.Equal(t, "S,M", product.Sizes)
	assert.Zero(t, store.Len(), "nothing staged, nothing uploaded")

	persisted, err := repo.GetByID(prior.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Berserk Tee v2", persisted.Name)
	assert.Equal(t, prior.Image, persisted.Image)
	assert.Equal(t, prior.HoverImage, persisted.HoverImage)
}

func TestEditorService_SubmitSingleStagedSlot(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	store := objectstore.NewMemoryStore("https://storage.test")
	prior := existingProduct(t, repo)

	service := services.NewEditorService(repo, store, nil, nil)
	product, err := service.Submit(context.Background(), services.SubmitRequest{
		ID:            prior.ID,
		Name:          prior.Name,
		Price:         prior.Price,
		Discount:      prior.Discount,
		Sizes:         []string{"S", "M", "L"},
		Category:      prior.Category,
		Image:         stagedFile("new-tee.png", "png-bytes"),
		ImageURL:      prior.Image,
		HoverImageURL: prior.HoverImage,
	})

	assert.NoError(t, err)
	// Only the primary slot changed; hover is untouched.
	assert.Equal(t, "https://storage.test/images/new-tee.png", product.Image)
	assert.Equal(t, prior.HoverImage, product.HoverImage)

	data, ok := store.Object("images/new-tee.png")
	assert.True(t, ok)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, 1, store.Len())
}

func TestEditorService_SubmitBothSlots(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	store := objectstore.NewMemoryStore("https://storage.test")
	prior := existingProduct(t, repo)

	service := services.NewEditorService(repo, store, nil, nil)
	product, err := service.Submit(context.Background(), services.SubmitRequest{
		ID:         prior.ID,
		Name:       prior.Name,
		Price:      prior.Price,
		Sizes:      []string{"S"},
		Image:      stagedFile("a.png", "a"),
		HoverImage: stagedFile("b.png", "b"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://storage.test/images/a.png", product.Image)
	assert.Equal(t, "https://storage.test/images/b.png", product.HoverImage)
	assert.Equal(t, 2, store.Len())
}

func TestEditorService_SubmitCreatesWhenIDEmpty(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	store := objectstore.NewMemoryStore("https://storage.test")

	var callback *models.Product
	service := services.NewEditorService(repo, store, nil, func(p *models.Product) {
		callback = p
	})

	product, err := service.Submit(context.Background(), services.SubmitRequest{
		Name:  "Pre-Workout",
		Price: 34.90,
		Sizes: []string{"300g"},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.NotNil(t, callback)
	assert.Equal(t, product, callback, "completion handler receives the composed record")

	persisted, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Pre-Workout", persisted.Name)
}

func TestEditorService_UploadFailureSkipsPersistence(t *testing.T) {
	repo := new(MockProductRepository)
	store := objectstore.NewMemoryStore("https://storage.test")
	store.UploadErr = fmt.Errorf("storage unavailable")

	var notified bool
	service := services.NewEditorService(repo, store, nil, func(*models.Product) {
		notified = true
	})

	_, err := service.Submit(context.Background(), services.SubmitRequest{
		ID:    "p1",
		Name:  "Berserk Tee",
		Price: 100,
		Image: stagedFile("tee.png", "png-bytes"),
	})

	assert.ErrorIs(t, err, services.ErrUploadFailure)
	assert.False(t, notified, "completion handler must not run on failure")
	repo.AssertNotCalled(t, "Update", mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestEditorService_PersistenceFailure(t *testing.T) {
	repo := new(MockProductRepository)
	store := objectstore.NewMemoryStore("https://storage.test")
	repo.On("Update", mock.Anything).Return(fmt.Errorf("write refused")).Once()

	service := services.NewEditorService(repo, store, nil, nil)
	_, err := service.Submit(context.Background(), services.SubmitRequest{
		ID:    "p1",
		Name:  "Berserk Tee",
		Price: 100,
	})

	assert.ErrorIs(t, err, services.ErrPersistenceFailure)
	repo.AssertExpectations(t)
}

func TestEditorService_ValidationFailureSkipsPersistence(t *testing.T) {
	repo := new(MockProductRepository)
	store := objectstore.NewMemoryStore("https://storage.test")

	service := services.NewEditorService(repo, store, nil, nil)
	_, err := service.Submit(context.Background(), services.SubmitRequest{
		ID:       "p1",
		Name:     "Berserk Tee",
		Price:    100,
		Discount: 150, // out of range
	})

	assert.Error(t, err)
	var validationErrors validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrors)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

// blockingStore parks every upload until released, to hold a
// submission in flight.
type blockingStore struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	close(s.started)
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *blockingStore) PublicURL(path string) string {
	return "https://storage.test/" + path
}

func TestEditorService_RejectsConcurrentSubmitForSameProduct(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	existingProduct(t, repo)
	store := &blockingStore{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	service := services.NewEditorService(repo, store, nil, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := service.Submit(context.Background(), services.SubmitRequest{
			ID:    "p1",
			Name:  "Berserk Tee",
			Price: 100,
			Image: stagedFile("tee.png", "png-bytes"),
		})
		firstDone <- err
	}()

	// Wait until the first submission is mid-upload, then try again.
	<-store.started
	_, err := service.Submit(context.Background(), services.SubmitRequest{
		ID:    "p1",
		Name:  "Berserk Tee",
		Price: 100,
	})
	assert.ErrorIs(t, err, services.ErrSubmitInFlight)

	close(store.release)
	select {
	case err := <-firstDone:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never finished")
	}

	// The in-flight flag was released; the same product can be
	// submitted again.
	_, err = service.Submit(context.Background(), services.SubmitRequest{
		ID:    "p1",
		Name:  "Berserk Tee",
		Price: 100,
	})
	assert.NoError(t, err)
}
