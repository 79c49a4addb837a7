package storefront

import (
	"sort"
	"sync"
)

// FilterOption 筛选项
type FilterOption struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Count   int64  `json:"count,omitempty"`
	Checked bool   `json:"checked"`
}

// FilterSection 侧边栏中的一个筛选分组
type FilterSection struct {
	Key     string         `json:"key"`
	Title   string         `json:"title"`
	Open    bool           `json:"open"`
	Options []FilterOption `json:"options"`
}

// FilterQuery 筛选面板导出的查询条件，Values 以分组 Key 索引
type FilterQuery struct {
	Values   map[string][]string `json:"values,omitempty"`
	MinPrice *int64              `json:"min_price,omitempty"`
	MaxPrice *int64              `json:"max_price,omitempty"`
}

// FilterPanel 目录页筛选侧边栏状态
type FilterPanel struct {
	mu       sync.Mutex
	sections []FilterSection
	minPrice *int64
	maxPrice *int64
}

// NewFilterPanel 初始所有分组展开，未勾选任何项
func NewFilterPanel(sections []FilterSection) *FilterPanel {
	cp := make([]FilterSection, len(sections))
	for i, s := range sections {
		s.Open = true
		s.Options = append([]FilterOption(nil), s.Options...)
		for j := range s.Options {
			s.Options[j].Checked = false
		}
		cp[i] = s
	}
	return &FilterPanel{sections: cp}
}

// Toggle 展开/收起分组，未知分组忽略
func (p *FilterPanel) Toggle(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s := p.sectionLocked(key); s != nil {
		s.Open = !s.Open
	}
}

// Check 勾选/取消某个筛选项
func (p *FilterPanel) Check(key, value string, on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.sectionLocked(key)
	if s == nil {
		return
	}
	for i := range s.Options {
		if s.Options[i].Value == value {
			s.Options[i].Checked = on
			return
		}
	}
}

// SetPriceRange 设置价格区间，min > max 时交换
func (p *FilterPanel) SetPriceRange(min, max *int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if min != nil && *min < 0 {
		zero := int64(0)
		min = &zero
	}
	if min != nil && max != nil && *min > *max {
		min, max = max, min
	}
	p.minPrice, p.maxPrice = min, max
}

// Reset 清空所有勾选和价格区间（展开状态保留）
func (p *FilterPanel) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.sections {
		for j := range p.sections[i].Options {
			p.sections[i].Options[j].Checked = false
		}
	}
	p.minPrice, p.maxPrice = nil, nil
}

// Sections 当前分组快照
func (p *FilterPanel) Sections() []FilterSection {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]FilterSection, len(p.sections))
	for i, s := range p.sections {
		s.Options = append([]FilterOption(nil), s.Options...)
		out[i] = s
	}
	return out
}

// Query 导出当前勾选项为查询条件
func (p *FilterPanel) Query() FilterQuery {
	p.mu.Lock()
	defer p.mu.Unlock()

	q := FilterQuery{MinPrice: p.minPrice, MaxPrice: p.maxPrice}
	for _, s := range p.sections {
		for _, o := range s.Options {
			if !o.Checked {
				continue
			}
			if q.Values == nil {
				q.Values = make(map[string][]string)
			}
			q.Values[s.Key] = append(q.Values[s.Key], o.Value)
		}
	}
	for k := range q.Values {
		sort.Strings(q.Values[k])
	}
	return q
}

func (p *FilterPanel) sectionLocked(key string) *FilterSection {
	for i := range p.sections {
		if p.sections[i].Key == key {
			return &p.sections[i]
		}
	}
	return nil
}
