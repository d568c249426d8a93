package products

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"volnasup.ru/shop/internal/shared/apperr"
	"volnasup.ru/shop/pkg/view"
)

type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service { return &Service{catalog: catalog} }

type variantOptions struct {
	Length string `json:"length"`
	Volume string `json:"volume"`
}

func (s *Service) Cards(ctx context.Context, limit, offset int) ([]view.ProductCard, error) {
	items, err := s.catalog.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(err)
	}

	cards := make([]view.ProductCard, 0, len(items))
	for _, p := range items {
		cards = append(cards, toCard(p))
	}
	return cards, nil
}

func (s *Service) Detail(ctx context.Context, slug string) (view.ProductDetail, error) {
	p, err := s.catalog.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view.ProductDetail{}, apperr.NotFoundErr("Товар не найден.")
		}
		return view.ProductDetail{}, apperr.Wrap(err)
	}

	d := view.ProductDetail{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Images:      make([]string, 0, len(p.Images)),
		Price:       fromPrice(p.Variants),
		Variants:    make([]view.ProductVariant, 0, len(p.Variants)),
	}
	for _, im := range p.Images {
		d.Images = append(d.Images, im.URL)
	}
	for _, v := range p.Variants {
		var opts variantOptions
		_ = json.Unmarshal(v.Options, &opts)
		d.Variants = append(d.Variants, view.ProductVariant{
			ID:      v.ID,
			SKU:     v.SKU,
			Length:  opts.Length,
			Volume:  opts.Volume,
			Price:   view.MoneyFromCents(v.PriceCents, v.Currency),
			Stock:   v.Stock,
			InStock: v.Stock > 0,
		})
	}
	return d, nil
}

func toCard(p Product) view.ProductCard {
	card := view.ProductCard{
		Slug:    p.Slug,
		Name:    p.Name,
		Price:   fromPrice(p.Variants),
		InStock: anyInStock(p.Variants),
	}
	if len(p.Images) > 0 {
		card.ImageURL = p.Images[0].URL
	}
	return card
}

// fromPrice shows the cheapest variant. Variants come price-sorted from
// the repo, but the cache may return them in stored order.
func fromPrice(vs []Variant) string {
	if len(vs) == 0 {
		return ""
	}
	minCents := vs[0].PriceCents
	currency := vs[0].Currency
	for _, v := range vs[1:] {
		if v.PriceCents < minCents {
			minCents = v.PriceCents
			currency = v.Currency
		}
	}
	return view.MoneyFromCents(minCents, currency)
}

func anyInStock(vs []Variant) bool {
	for _, v := range vs {
		if v.Stock > 0 {
			return true
		}
	}
	return false
}
