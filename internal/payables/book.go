package payables

import (
	"sort"

	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/shopspring/decimal"
)

// Book is a caller-side view of accounts payable, ordered by due date.
type Book struct {
	entries []models.AccountsPayableEntry
}

// NewBook copies entries into a book sorted by due date, then name.
func NewBook(entries []models.AccountsPayableEntry) *Book {
	b := &Book{entries: append([]models.AccountsPayableEntry(nil), entries...)}
	b.sort()
	return b
}

func (b *Book) Entries() []models.AccountsPayableEntry {
	return append([]models.AccountsPayableEntry(nil), b.entries...)
}

func (b *Book) Len() int {
	return len(b.entries)
}

// Get looks an entry up by id.
func (b *Book) Get(id string) (models.AccountsPayableEntry, bool) {
	for _, entry := range b.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.AccountsPayableEntry{}, false
}

// Add appends entries, keeping due-date order.
func (b *Book) Add(entries ...models.AccountsPayableEntry) {
	b.entries = append(b.entries, entries...)
	b.sort()
}

// Replace swaps the entry with the same id; it reports false when absent.
func (b *Book) Replace(entry models.AccountsPayableEntry) bool {
	for i := range b.entries {
		if b.entries[i].ID == entry.ID {
			b.entries[i] = entry
			b.sort()
			return true
		}
	}
	return false
}

// Remove drops exactly one entry by id. Siblings in the same series keep their numbers.
func (b *Book) Remove(id string) bool {
	for i := range b.entries {
		if b.entries[i].ID == id {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveSeries drops every entry of the series and returns how many were removed.
func (b *Book) RemoveSeries(seriesID string) int {
	kept := b.entries[:0]
	removed := 0
	for _, entry := range b.entries {
		if entry.InSeries(seriesID) {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	b.entries = kept
	return removed
}

// Series returns the entries of one series in installment order.
func (b *Book) Series(seriesID string) []models.AccountsPayableEntry {
	var out []models.AccountsPayableEntry
	for _, entry := range b.entries {
		if entry.InSeries(seriesID) {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return installmentNumber(out[i]) < installmentNumber(out[j])
	})
	return out
}

// Overdue lists unpaid entries due strictly before today.
func (b *Book) Overdue(today types.Date) []models.AccountsPayableEntry {
	var out []models.AccountsPayableEntry
	for _, entry := range b.entries {
		if !entry.IsPaid && entry.DueDate.Before(today) {
			out = append(out, entry)
		}
	}
	return out
}

// Upcoming lists unpaid entries due from today through the next days days.
func (b *Book) Upcoming(today types.Date, days int) []models.AccountsPayableEntry {
	limit := today.AddDate(0, 0, days)
	var out []models.AccountsPayableEntry
	for _, entry := range b.entries {
		if entry.IsPaid || entry.DueDate.Before(today) || entry.DueDate.Time.After(limit) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// Outstanding sums the amounts not yet paid.
func (b *Book) Outstanding() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range b.entries {
		if !entry.IsPaid {
			total = total.Add(entry.Amount)
		}
	}
	return total
}

func (b *Book) sort() {
	sort.SliceStable(b.entries, func(i, j int) bool {
		a, c := b.entries[i], b.entries[j]
		if !a.DueDate.Equal(c.DueDate.Time) {
			return a.DueDate.Before(c.DueDate)
		}
		return a.Name < c.Name
	})
}

func installmentNumber(e models.AccountsPayableEntry) int {
	if e.InstallmentNumberOfSeries == nil {
		return 0
	}
	return *e.InstallmentNumberOfSeries
}
