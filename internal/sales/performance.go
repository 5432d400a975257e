package sales

import (
	"sort"

	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Performance is one salesperson's row in the sales report.
type Performance struct {
	Username       string          `json:"username"`
	FullName       string          `json:"fullName"`
	QuotesIssued   int             `json:"quotesIssued"`
	QuotesWon      int             `json:"quotesWon"`
	IssuedTotal    decimal.Decimal `json:"issuedTotal"`
	WonTotal       decimal.Decimal `json:"wonTotal"`
	ConversionRate decimal.Decimal `json:"conversionRate"`
}

func isWon(status enums.QuoteStatus) bool {
	return status == enums.QuoteStatusAccepted || status == enums.QuoteStatusConvertedToOrder
}

// Compute aggregates quotes created inside rng per salesperson. Every user in
// users gets a row even without quotes; quotes from unknown usernames still
// count. Rows are ordered by won total, then by username.
func Compute(quotes []models.Quote, users []models.User, rng types.DateRange) []Performance {
	rows := map[string]*Performance{}
	row := func(username string) *Performance {
		if p, ok := rows[username]; ok {
			return p
		}
		p := &Performance{Username: username, FullName: username, IssuedTotal: decimal.Zero, WonTotal: decimal.Zero}
		rows[username] = p
		return p
	}

	for _, u := range users {
		if u.Role == enums.UserRoleViewer {
			continue
		}
		p := row(u.Username)
		if u.FullName != nil && *u.FullName != "" {
			p.FullName = *u.FullName
		}
	}

	for _, q := range quotes {
		if !rng.ContainsTime(q.CreatedAt) {
			continue
		}
		p := row(q.SalespersonUsername)
		if p.FullName == p.Username && q.SalespersonFullName != nil && *q.SalespersonFullName != "" {
			p.FullName = *q.SalespersonFullName
		}
		p.QuotesIssued++
		p.IssuedTotal = p.IssuedTotal.Add(q.TotalCash)
		if isWon(q.Status) {
			p.QuotesWon++
			p.WonTotal = p.WonTotal.Add(q.TotalCash)
		}
	}

	out := make([]Performance, 0, len(rows))
	for _, p := range rows {
		p.ConversionRate = decimal.Zero
		if p.QuotesIssued > 0 {
			p.ConversionRate = decimal.NewFromInt(int64(p.QuotesWon)).
				Mul(hundred).
				Div(decimal.NewFromInt(int64(p.QuotesIssued))).
				Round(2)
		}
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].WonTotal.Cmp(out[j].WonTotal); c != 0 {
			return c > 0
		}
		return out[i].Username < out[j].Username
	})
	return out
}
