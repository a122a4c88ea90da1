package pricing

import (
	"strings"

	"go.uber.org/fx"

	"github.com/fatflowers/letterpay/pkg/config"
	"github.com/fatflowers/letterpay/pkg/types"
)

// Resolver prices a letter by its purpose text. Implementations must be pure:
// the same purpose always yields the same amount.
type Resolver interface {
	PriceFor(purpose string) int64
}

// TableResolver evaluates configured rules: an exact (case-insensitive) match
// wins, then the first rule whose match text occurs in the purpose, then the
// default amount.
type TableResolver struct {
	exact         map[string]int64
	rules         []types.PriceRule
	defaultAmount int64
}

func NewTableResolver(rules []*types.PriceRule, defaultAmount int64) *TableResolver {
	r := &TableResolver{exact: make(map[string]int64, len(rules)), defaultAmount: defaultAmount}
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		key := normalize(rule.Match)
		if key == "" {
			continue
		}
		if _, dup := r.exact[key]; !dup {
			r.exact[key] = rule.Amount
		}
		r.rules = append(r.rules, types.PriceRule{Match: key, Amount: rule.Amount})
	}
	return r
}

func NewFromConfig(cfg *config.Config) Resolver {
	return NewTableResolver(cfg.Pricing.Rules, cfg.Pricing.DefaultAmount)
}

func (r *TableResolver) PriceFor(purpose string) int64 {
	p := normalize(purpose)
	if amount, ok := r.exact[p]; ok {
		return amount
	}
	for _, rule := range r.rules {
		if strings.Contains(p, rule.Match) {
			return rule.Amount
		}
	}
	return r.defaultAmount
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

var Module = fx.Options(
	fx.Provide(NewFromConfig),
)
