package detect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MaxImages    = 3
	MaxImageSize = 10 << 20
)

var (
	ErrNoImages      = errors.New("no images uploaded")
	ErrTooManyImages = fmt.Errorf("at most %d images can be analyzed at once", MaxImages)
	ErrImageTooLarge = errors.New("each file size must be less than 10MB")
	ErrNotAnImage    = errors.New("please upload only image files")
)

// UploadError ties a validation failure to the file that caused it.
type UploadError struct {
	File string
	Err  error
}

func (e *UploadError) Error() string { return fmt.Sprintf("%s: %v", e.File, e.Err) }

func (e *UploadError) Unwrap() error { return e.Err }

// ValidateImage checks size and sniffed content type.
func ValidateImage(name string, data []byte) error {
	if len(data) > MaxImageSize {
		return &UploadError{File: name, Err: ErrImageTooLarge}
	}
	if mt := mimetype.Detect(data); !strings.HasPrefix(mt.String(), "image/") {
		return &UploadError{File: name, Err: ErrNotAnImage}
	}
	return nil
}

// Analyzer runs Detect over a batch of uploads.
type Analyzer struct {
	catalog *Catalog
	log     *zap.Logger
}

func NewAnalyzer(catalog *Catalog, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{catalog: catalog, log: log}
}

func (a *Analyzer) Catalog() *Catalog { return a.catalog }

// AnalyzeAll analyzes the images concurrently. Results are in upload order.
func (a *Analyzer) AnalyzeAll(ctx context.Context, images []Image) ([]Result, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if len(images) > MaxImages {
		return nil, ErrTooManyImages
	}

	results := make([]Result, len(images))
	g, ctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.analyze(img)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze images: %w", err)
	}
	return results, nil
}

// analyze falls back to the first catalog entry if matching panics.
func (a *Analyzer) analyze(img Image) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("image analysis panicked", zap.String("file", img.Name), zap.Any("panic", r))
			res = newResult(a.catalog.candidates[0], MethodContentHash, nil, 0)
		}
	}()

	res = a.catalog.Detect(img)
	a.log.Debug("image analyzed",
		zap.String("file", img.Name),
		zap.String("disease", res.Disease.Name),
		zap.String("method", string(res.Method)),
	)
	return res
}
