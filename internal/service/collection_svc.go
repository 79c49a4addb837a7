package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/model"
	"orient_store/internal/repository"
)

// CollectionProductsPageSize 系列商品默认每页数量
const CollectionProductsPageSize = 50

// ==================== CollectionService 系列服务 ====================

type CollectionService struct {
	collectionRepo repository.CollectionRepository
	productRepo    repository.ProductRepository
	log            *zap.Logger
}

func NewCollectionService(collectionRepo repository.CollectionRepository, productRepo repository.ProductRepository, log *zap.Logger) *CollectionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollectionService{
		collectionRepo: collectionRepo,
		productRepo:    productRepo,
		log:            log.Named("collection"),
	}
}

// ListActive 启用的系列，watchCount 实时统计
func (s *CollectionService) ListActive(ctx context.Context) ([]dto.CollectionResp, error) {
	collections, err := s.collectionRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("查询系列失败: %w", err)
	}
	counts, err := s.productRepo.CountByCollection(ctx)
	if err != nil {
		return nil, fmt.Errorf("统计系列商品数失败: %w", err)
	}

	list := make([]dto.CollectionResp, len(collections))
	for i := range collections {
		list[i] = dto.ToCollectionResp(&collections[i], counts[collections[i].Name])
	}
	return list, nil
}

// Get 系列详情
func (s *CollectionService) Get(ctx context.Context, id string) (*dto.CollectionResp, error) {
	c, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCollectionNotFound)
	}
	counts, err := s.productRepo.CountByCollection(ctx)
	if err != nil {
		return nil, fmt.Errorf("统计系列商品数失败: %w", err)
	}
	resp := dto.ToCollectionResp(c, counts[c.Name])
	return &resp, nil
}

// Products 系列下的商品（分页）
func (s *CollectionService) Products(ctx context.Context, id string, page, limit int) (*dto.ProductListResp, error) {
	c, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCollectionNotFound)
	}

	page, limit = normalizePage(page, limit, CollectionProductsPageSize)
	products, total, err := s.productRepo.List(ctx, repository.ProductFilter{
		Collections: []string{c.Name},
		Page:        page,
		PageSize:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("查询系列商品失败: %w", err)
	}

	return &dto.ProductListResp{
		Data:       dto.ToProductResps(products),
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// Create 创建系列，ID 重复返回 ErrCollectionExists
func (s *CollectionService) Create(ctx context.Context, req *dto.CreateCollectionReq) (*model.Collection, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: ID 和名称不能为空", ErrValidation)
	}

	exists, err := s.collectionRepo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCollectionExists
	}

	c := &model.Collection{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       req.Image,
		Number:      req.Number,
		Active:      true,
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.collectionRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("创建系列失败: %w", err)
	}
	s.log.Info("系列已创建", zap.String("collection_id", c.ID))
	return c, nil
}

// Update 部分更新
func (s *CollectionService) Update(ctx context.Context, id string, req *dto.UpdateCollectionReq) (*model.Collection, error) {
	c, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCollectionNotFound)
	}

	applyString(&c.Name, req.Name)
	applyString(&c.Description, req.Description)
	applyString(&c.Image, req.Image)
	applyString(&c.Number, req.Number)
	if req.Active != nil {
		c.Active = *req.Active
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: 名称不能为空", ErrValidation)
	}

	if err := s.collectionRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("更新系列失败: %w", err)
	}
	return c, nil
}

// Delete 删除系列（不删除其下商品）
func (s *CollectionService) Delete(ctx context.Context, id string) error {
	if err := s.collectionRepo.Delete(ctx, id); err != nil {
		return notFound(err, ErrCollectionNotFound)
	}
	s.log.Info("系列已删除", zap.String("collection_id", id))
	return nil
}

// Import 批量写入（种子数据）
func (s *CollectionService) Import(ctx context.Context, cs []model.Collection) error {
	return s.collectionRepo.BatchUpsert(ctx, cs)
}
