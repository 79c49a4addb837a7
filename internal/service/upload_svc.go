package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orient_store/internal/api/dto"
)

const MaxUploadSize = 5 * 1024 * 1024 // 5MB

// AllowedImageExtensions 允许上传的扩展名
var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// ==================== UploadService 图片上传 ====================

type UploadService struct {
	storage StorageProvider
	maxSize int64
	log     *zap.Logger
}

func NewUploadService(storage StorageProvider, log *zap.Logger) *UploadService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UploadService{storage: storage, maxSize: MaxUploadSize, log: log.Named("upload")}
}

// CheckFile 在读取内容之前校验扩展名与大小
func (s *UploadService) CheckFile(filename string, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range AllowedImageExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("%w, 允许: %s", ErrUnsupportedFileType, strings.Join(AllowedImageExtensions, ", "))
	}
	if size > s.maxSize {
		return "", fmt.Errorf("%w, 最大 %dMB", ErrFileTooLarge, s.maxSize/1024/1024)
	}
	return ext, nil
}

// Upload 保存图片，文件名为 uuid + 原扩展名
func (s *UploadService) Upload(ctx context.Context, filename, contentType string, data []byte) (*dto.UploadResp, error) {
	ext, err := s.CheckFile(filename, int64(len(data)))
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = detectContentType(data)
	}

	key := uuid.New().String() + ext
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, err
	}

	s.log.Info("文件已上传", zap.String("key", key), zap.Int("size", len(data)))
	return &dto.UploadResp{
		URL:      url,
		Filename: key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}
