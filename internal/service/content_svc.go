package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"orient_store/internal/api/dto"
	"orient_store/internal/model"
	"orient_store/internal/repository"
	"orient_store/pkg/utils"
)

// ==================== 默认内容 ====================

// 数据库无记录时返回的默认内容
var (
	DefaultHero = dto.HeroContent{
		Title:    "НАЙДИТЕ\nИДЕАЛЬНЫЕ\nЧАСЫ.",
		Subtitle: "Японское мастерство и точность в каждой детали",
		Image:    "https://images.unsplash.com/photo-1587836374828-4dbafa94cf0e?w=800&q=80",
		CtaText:  "Смотреть коллекцию",
		CtaLink:  "/catalog",
	}
	DefaultPromo = dto.PromoBanner{
		Text:            "СКИДКА 15% НА ВСЕ ЧАСЫ С КОДОМ",
		Code:            "PRE2025",
		Active:          true,
		BackgroundColor: "#000000",
		TextColor:       "#FFFFFF",
		HighlightColor:  "#C8102E",
	}
	DefaultHeritage = dto.HeritageSection{
		Title:       "75 лет\nмастерства",
		Subtitle:    "С 1950 года",
		Description: "Orient создает механические часы высочайшего качества, объединяя традиционное японское мастерство с современными технологиями.",
		CtaText:     "Узнать историю",
		CtaLink:     "/history",
		YearsText:   "75",
	}
)

const homeCacheKey = "home"

// ==================== ContentService 首页内容服务 ====================

type ContentService struct {
	contentRepo repository.ContentRepository
	productRepo repository.ProductRepository
	collections *CollectionService
	cache       *utils.TTLCache[*dto.HomePage]
	log         *zap.Logger
}

// NewContentService cacheTTL<=0 时不缓存首页聚合
func NewContentService(contentRepo repository.ContentRepository, productRepo repository.ProductRepository,
	collections *CollectionService, cacheTTL time.Duration, log *zap.Logger) *ContentService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ContentService{
		contentRepo: contentRepo,
		productRepo: productRepo,
		collections: collections,
		log:         log.Named("content"),
	}
	if cacheTTL > 0 {
		s.cache = utils.NewTTLCache[*dto.HomePage](cacheTTL)
	}
	return s
}

// ==================== 读取 ====================

func (s *ContentService) Hero(ctx context.Context) (dto.HeroContent, error) {
	hero, err := s.contentRepo.GetHero(ctx)
	if err != nil {
		return dto.HeroContent{}, err
	}
	if hero == nil {
		return DefaultHero, nil
	}
	return dto.HeroContent{
		Title:    hero.Title,
		Subtitle: hero.Subtitle,
		Image:    hero.Image,
		CtaText:  hero.CtaText,
		CtaLink:  hero.CtaLink,
	}, nil
}

func (s *ContentService) Promo(ctx context.Context) (dto.PromoBanner, error) {
	promo, err := s.contentRepo.GetPromo(ctx)
	if err != nil {
		return dto.PromoBanner{}, err
	}
	if promo == nil {
		return DefaultPromo, nil
	}
	return dto.PromoBanner{
		Text:            promo.Text,
		Code:            promo.Code,
		Active:          promo.Active,
		BackgroundColor: promo.BackgroundColor,
		TextColor:       promo.TextColor,
		HighlightColor:  promo.HighlightColor,
	}, nil
}

func (s *ContentService) Heritage(ctx context.Context) (dto.HeritageSection, error) {
	h, err := s.contentRepo.GetHeritage(ctx)
	if err != nil {
		return dto.HeritageSection{}, err
	}
	if h == nil {
		return DefaultHeritage, nil
	}
	return dto.HeritageSection{
		Title:       h.Title,
		Subtitle:    h.Subtitle,
		Description: h.Description,
		CtaText:     h.CtaText,
		CtaLink:     h.CtaLink,
		YearsText:   h.YearsText,
	}, nil
}

// Featured 推荐位，已删除的商品被跳过
func (s *ContentService) Featured(ctx context.Context) ([]dto.FeaturedWatch, error) {
	items, err := s.contentRepo.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]dto.FeaturedWatch, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		list = append(list, dto.FeaturedWatch{
			ID:         item.Product.PublicID(),
			Name:       item.Product.Name,
			Collection: item.Product.Collection,
			Price:      item.Product.Price,
			Image:      item.Product.Image,
			IsNew:      item.IsNew,
		})
	}
	return list, nil
}

// Home 首页聚合，五个区块并发读取
func (s *ContentService) Home(ctx context.Context) (*dto.HomePage, error) {
	if s.cache != nil {
		if page, ok := s.cache.Get(homeCacheKey); ok {
			return page, nil
		}
	}

	var page dto.HomePage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Hero, err = s.Hero(gctx)
		return
	})
	g.Go(func() (err error) {
		page.Promo, err = s.Promo(gctx)
		return
	})
	g.Go(func() (err error) {
		page.Featured, err = s.Featured(gctx)
		return
	})
	g.Go(func() (err error) {
		page.Collections, err = s.collections.ListActive(gctx)
		return
	})
	g.Go(func() (err error) {
		page.Heritage, err = s.Heritage(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("加载首页内容失败: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(homeCacheKey, &page)
	}
	return &page, nil
}

// ==================== 后台更新 ====================

func (s *ContentService) UpdateHero(ctx context.Context, req *dto.HeroContent) error {
	defer s.invalidate()
	return s.contentRepo.SaveHero(ctx, &model.ContentHero{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Image:    req.Image,
		CtaText:  req.CtaText,
		CtaLink:  req.CtaLink,
	})
}

func (s *ContentService) UpdatePromo(ctx context.Context, req *dto.PromoBanner) error {
	defer s.invalidate()
	return s.contentRepo.SavePromo(ctx, &model.ContentPromoBanner{
		Text:            req.Text,
		Code:            req.Code,
		Active:          req.Active,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
		HighlightColor:  req.HighlightColor,
	})
}

func (s *ContentService) UpdateHeritage(ctx context.Context, req *dto.HeritageSection) error {
	defer s.invalidate()
	return s.contentRepo.SaveHeritage(ctx, &model.ContentHeritage{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		CtaText:     req.CtaText,
		CtaLink:     req.CtaLink,
		YearsText:   req.YearsText,
	})
}

// SetFeatured 整体替换推荐位，所有商品必须存在
func (s *ContentService) SetFeatured(ctx context.Context, reqs []dto.FeaturedWatchReq) error {
	ids := make([]int64, 0, len(reqs))
	items := make([]model.ContentFeaturedWatch, 0, len(reqs))
	for _, r := range reqs {
		id, err := strconv.ParseInt(r.ProductID, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("%w: 无效的商品 ID %q", ErrValidation, r.ProductID)
		}
		ids = append(ids, id)
		items = append(items, model.ContentFeaturedWatch{ProductID: id, OrderNum: r.Order, IsNew: r.IsNew})
	}

	found, err := s.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	existing := make(map[int64]bool, len(found))
	for _, p := range found {
		existing[p.ID] = true
	}
	for _, id := range ids {
		if !existing[id] {
			return fmt.Errorf("%w: 商品 %d", ErrProductNotFound, id)
		}
	}

	defer s.invalidate()
	return s.contentRepo.ReplaceFeatured(ctx, items)
}

// InvalidateHome 商品或系列变更后清除首页缓存
func (s *ContentService) InvalidateHome() {
	s.invalidate()
}

func (s *ContentService) invalidate() {
	if s.cache != nil {
		s.cache.Delete(homeCacheKey)
	}
}
