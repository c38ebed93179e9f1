package service

import (
	"anre_quiz_backend/internal/config"
	"anre_quiz_backend/internal/model"
	"anre_quiz_backend/internal/subject"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageProvider resolves static question images by relative path.
type ImageProvider interface {
	Exists(ctx context.Context, relativePath string) bool
	URL(relativePath string) string
}

// LocalImageProvider serves images from a directory on disk.
type LocalImageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalImageProvider) Exists(ctx context.Context, relativePath string) bool {
	_, err := os.Stat(filepath.Join(p.Config.LocalPath, relativePath))
	return err == nil
}

func (p *LocalImageProvider) URL(relativePath string) string {
	return "/static/" + relativePath
}

// MinioImageProvider serves images from a MinIO bucket.
type MinioImageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioImageProvider(cfg *config.StorageConfig) (*MinioImageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioImageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioImageProvider) Exists(ctx context.Context, relativePath string) bool {
	_, err := p.Client.StatObject(ctx, p.Config.MinioBucket, relativePath, minio.StatObjectOptions{})
	return err == nil
}

func (p *MinioImageProvider) URL(relativePath string) string {
	return fmt.Sprintf("http://%s/%s/%s", p.Config.MinioEndpoint, p.Config.MinioBucket, relativePath)
}

// StorageService resolves the optional images attached to questions and
// their answer options.
type StorageService struct {
	Provider ImageProvider
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	switch cfg.Storage.Type {
	case "minio":
		provider, err := NewMinioImageProvider(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		return &StorageService{Provider: provider}, nil
	default:
		return &StorageService{Provider: &LocalImageProvider{Config: &cfg.Storage}}, nil
	}
}

// imageBase is the filename stem for a question's images: the explicit
// override when set, otherwise the subject prefix plus qid.
func imageBase(q *model.Question) string {
	if q.ImageBase != "" {
		return q.ImageBase
	}
	return fmt.Sprintf("%s%d", subject.ImagePrefix(q.Subject), q.QID)
}

// QuestionImage returns whether the question's main image exists and its URL.
func (s *StorageService) QuestionImage(ctx context.Context, q *model.Question) (bool, string) {
	relativePath := fmt.Sprintf("img/%s/%s.png", q.Subject, imageBase(q))
	if !s.Provider.Exists(ctx, relativePath) {
		return false, ""
	}
	return true, s.Provider.URL(relativePath)
}

// OptionImage returns an answer option's image; optionNumber is 1 for A,
// 2 for B, 3 for C.
func (s *StorageService) OptionImage(ctx context.Context, q *model.Question, optionNumber int) (bool, string) {
	relativePath := fmt.Sprintf("img/%s/%s_%d.png", q.Subject, imageBase(q), optionNumber)
	if !s.Provider.Exists(ctx, relativePath) {
		return false, ""
	}
	return true, s.Provider.URL(relativePath)
}
