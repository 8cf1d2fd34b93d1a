// Package fixture generates a deterministic synthetic contact-center dataset
// and serves it through the lead, event and base store interfaces. It backs
// local development and tests when no database is configured.
package fixture

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/phone"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	firstLeadID      = 100000
	maxLeadAgeDays   = 300
	maxTouches       = 12
	maxFollowUpDays  = 60
	enrollmentChance = 0.25
	phoneRegion      = "MX"
)

// Options controls generation. The same options always yield the same dataset.
type Options struct {
	Seed           uint64
	Size           int
	Anchor         time.Time
	EnrollmentCode string
}

// Dataset is a generated snapshot of the three contact-center tables.
type Dataset struct {
	Bases  []domain.Base
	Leads  []domain.Lead
	Events []domain.ContactEvent
}

// Generate draws opts.Size leads and their contact events from cat. Lead
// dates fall in the maxLeadAgeDays before opts.Anchor.
func Generate(cat Catalog, opts Options) Dataset {
	if opts.EnrollmentCode == "" {
		opts.EnrollmentCode = domain.DefaultEnrollmentCode
	}
	anchor := domain.CivilDate(opts.Anchor)
	g := &generator{
		cat:    cat,
		rng:    rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		anchor: anchor,
		code:   opts.EnrollmentCode,
	}

	ds := Dataset{
		Bases: append([]domain.Base(nil), cat.Bases...),
		Leads: make([]domain.Lead, 0, opts.Size),
	}
	for i := 1; i <= opts.Size; i++ {
		lead, enrolled := g.lead(strconv.Itoa(firstLeadID + i))
		ds.Leads = append(ds.Leads, lead)
		ds.Events = append(ds.Events, g.events(lead, enrolled)...)
	}
	return ds
}

type generator struct {
	cat    Catalog
	rng    *rand.Rand
	anchor time.Time
	code   string
}

func (g *generator) lead(id string) (domain.Lead, bool) {
	name := pick(g.rng, g.cat.Names)
	outcome := domain.Outcome(pickWeighted(g.rng, g.cat.Outcomes))
	channel := pickWeighted(g.rng, g.cat.Channels)
	base := pick(g.rng, g.cat.Bases)
	leadDate := g.daysAgo(1, maxLeadAgeDays)

	touches := 0
	if !outcome.IsNotContacted() {
		touches = 1 + g.rng.IntN(maxTouches)
	}
	enrolled := outcome.IsEffective() && g.rng.Float64() < enrollmentChance

	subcategory := g.code
	if !enrolled {
		subcategory = g.subcategory()
	}

	var lastContact *time.Time
	if touches > 0 {
		lastContact = g.daysAgo(0, maxFollowUpDays)
	}

	return domain.Lead{
		ID:                id,
		Channel:           channel,
		Name:              name,
		Email:             g.email(name),
		Phone:             g.phone(),
		SourceBase:        base.Name,
		LeadDate:          leadDate,
		LastContactDate:   lastContact,
		ProgramOfInterest: pick(g.rng, g.cat.Programs),
		Outcome:           outcome,
		TouchCount:        touches,
		LatestSubcategory: subcategory,
	}, enrolled
}

// events emits one attempt per touch. The last attempt of an enrolled lead
// carries the sale.
func (g *generator) events(lead domain.Lead, enrolled bool) []domain.ContactEvent {
	out := make([]domain.ContactEvent, 0, lead.TouchCount)
	for t := 0; t < lead.TouchCount; t++ {
		at := lead.LeadDate.AddDate(0, 0, 1+g.rng.IntN(maxFollowUpDays)).
			Add(time.Duration(8*3600+g.rng.IntN(10*3600)) * time.Second)

		var sale int64
		if enrolled && t == lead.TouchCount-1 {
			sale = int64(1 + g.rng.IntN(999))
		}

		out = append(out, domain.ContactEvent{
			DedupKey:   fmt.Sprintf("mock_%s_%d", lead.ID, t),
			LeadID:     lead.ID,
			OccurredAt: at,
			Agent:      pick(g.rng, g.cat.Agents),
			SaleID:     sale,
			SourceBase: lead.SourceBase,
		})
	}
	return out
}

func (g *generator) daysAgo(minDays, maxDays int) *time.Time {
	d := g.anchor.AddDate(0, 0, -(minDays + g.rng.IntN(maxDays-minDays+1)))
	return &d
}

func (g *generator) subcategory() string {
	for {
		s := pick(g.rng, g.cat.Subcategories)
		if s != g.code {
			return s
		}
	}
}

func (g *generator) email(name string) string {
	local := strings.ReplaceAll(strings.ToLower(stripAccents(name)), " ", ".")
	return fmt.Sprintf("%s%d@%s", local, 1+g.rng.IntN(99), pick(g.rng, g.cat.EmailDomains))
}

func (g *generator) phone() string {
	raw := fmt.Sprintf("+52 %d%d", 55+g.rng.IntN(45), 10000000+g.rng.IntN(90000000))
	return phone.FormatInternational(raw, phoneRegion)
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

func pickWeighted(rng *rand.Rand, items []weighted) string {
	total := 0
	for _, it := range items {
		total += it.Weight
	}
	n := rng.IntN(total)
	for _, it := range items {
		if n < it.Weight {
			return it.Name
		}
		n -= it.Weight
	}
	return items[len(items)-1].Name
}
