package service

import (
	"sort"
	"sync"

	"orient_store/internal/storefront"
)

// CartLine 购物车条目
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ==================== CartService 内存购物车 ====================

// CartService 按会话保存的内存购物车，进程重启后丢失
type CartService struct {
	mu    sync.Mutex
	carts map[string]map[string]int // cartID -> productID -> qty
}

func NewCartService() *CartService {
	return &CartService{carts: make(map[string]map[string]int)}
}

// AddItem 累加数量，quantity<1 时忽略
func (s *CartService) AddItem(cartID, productID string, quantity int) {
	if quantity < 1 || productID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		cart = make(map[string]int)
		s.carts[cartID] = cart
	}
	cart[productID] += quantity
}

// Items 按商品 ID 排序返回
func (s *CartService) Items(cartID string) []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[cartID]
	lines := make([]CartLine, 0, len(cart))
	for id, qty := range cart {
		lines = append(lines, CartLine{ProductID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

// Count 商品件数合计（角标）
func (s *CartService) Count(cartID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, qty := range s.carts[cartID] {
		total += qty
	}
	return total
}

// Len 当前保存的购物车数
func (s *CartService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

func (s *CartService) Clear(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
}

// Sink 绑定到某个购物车的加购出口
func (s *CartService) Sink(cartID string) storefront.CartSink {
	return storefront.CartSinkFunc(func(productID string, quantity int) {
		s.AddItem(cartID, productID, quantity)
	})
}
