package catalog

import (
	"context"
	"sort"
	"strings"
)

// GeneralCategory is the fallback info category.
const GeneralCategory = "general"

// InfoFor returns the text for category, falling back to the general
// entry. ok is false when neither exists.
func InfoFor(ctx context.Context, src Source, category string) (text string, ok bool, err error) {
	info, err := src.BusinessInfo(ctx)
	if err != nil {
		return "", false, err
	}
	if v, found := info[category]; found {
		return v, true, nil
	}
	if v, found := info[GeneralCategory]; found {
		return v, true, nil
	}
	return "", false, nil
}

// PriceFor finds the MenuPrice for menuType: exact key first
// (case-insensitive), then the first key that contains or is contained
// in the requested name, scanning keys in sorted order.
func PriceFor(ctx context.Context, src Source, menuType string) (key string, price MenuPrice, ok bool, err error) {
	prices, err := src.MenuPrices(ctx)
	if err != nil {
		return "", MenuPrice{}, false, err
	}
	want := strings.ToLower(strings.TrimSpace(menuType))
	if want == "" {
		return "", MenuPrice{}, false, nil
	}
	if p, found := prices[want]; found {
		return want, p, true, nil
	}

	keys := make([]string, 0, len(prices))
	for k := range prices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lk := strings.ToLower(k)
		if strings.Contains(want, lk) || strings.Contains(lk, want) {
			return k, prices[k], true, nil
		}
	}
	return "", MenuPrice{}, false, nil
}

// Sections returns the menu restricted to section when that section
// exists, or the whole menu otherwise.
func Sections(ctx context.Context, src Source, section string) (map[string][]MenuItem, error) {
	menu, err := src.MenuDetails(ctx)
	if err != nil {
		return nil, err
	}
	if section != "" {
		if items, ok := menu[section]; ok {
			return map[string][]MenuItem{section: items}, nil
		}
	}
	return menu, nil
}
