package middleware

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"orient_store/internal/storefront"
)

var registerOnce sync.Once

// RegisterValidators 注册自定义 binding 标签，重复调用无副作用
//
//	sortkey: 目录排序键 popular | price-asc | price-desc | newest | name
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("sortkey", validateSortKey)
	})
}

func validateSortKey(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || string(storefront.ParseSortKey(s)) == s
}
