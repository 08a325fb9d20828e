package analyzing

import (
	"sort"

	"github.com/vfg2006/open-finance-api/internal/domain"
)

// BestOpportunities seleciona os topN produtos de cada categoria da vitrine.
// Renda fixa pela maior taxa sobre o CDI, tesouro pelo maior cupom, fundos pela menor taxa de
// administração; ações, FIIs e cripto seguem a ordem da instituição.
func BestOpportunities(products []*domain.Product, topN int) domain.Opportunities {
	return domain.Opportunities{
		FixedIncome: top(filter(products, func(p *domain.Product) bool {
			return p.Type == domain.ProductTypeCDB && p.IsIndexedToCDI()
		}), topN, func(a, b *domain.Product) bool { return a.RateValue > b.RateValue }),
		Treasury: top(filter(products, ofType(domain.ProductTypeTreasury)), topN,
			func(a, b *domain.Product) bool { return a.CouponRate > b.CouponRate }),
		Funds: top(filter(products, ofType(domain.ProductTypeFunds)), topN,
			func(a, b *domain.Product) bool { return a.AdminFee < b.AdminFee }),
		Stocks: top(filter(products, ofType(domain.ProductTypeStock)), topN, nil),
		FIIs:   top(filter(products, ofType(domain.ProductTypeFII)), topN, nil),
		Crypto: top(filter(products, ofType(domain.ProductTypeCrypto)), topN, nil),
	}
}

func ofType(t domain.ProductType) func(*domain.Product) bool {
	return func(p *domain.Product) bool { return p.Type == t }
}

func filter(products []*domain.Product, keep func(*domain.Product) bool) []*domain.Product {
	out := []*domain.Product{}
	for _, p := range products {
		if p != nil && keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func top(products []*domain.Product, n int, less func(a, b *domain.Product) bool) []*domain.Product {
	if less != nil {
		sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
	}
	if len(products) > n {
		products = products[:n]
	}
	return products
}
