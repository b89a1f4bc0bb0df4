// Package demo generates a reproducible synthetic lead set for offline use.
package demo

import (
	"fmt"
	"strconv"
	"time"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"github.com/brianvoe/gofakeit/v6"
)

// Seed is the fixed seed of the generator stream.
const Seed int64 = 20260105

// DefaultCount is the record count used for demo mode and ingestion fallback.
const DefaultCount = 88

var (
	companies = []string{
		"Acme Co", "Orbit LLC", "Northwind", "Skyline Inc", "Pine Labs",
		"Cobalt Systems", "Juniper Works", "Atlas Freight", "Copperhouse",
		"Nova Retail", "Helios Fitness", "Banyan Tech", "Kite Logistics",
		"Vanta Media", "Keystone Dental", "Saffron Foods", "Marble & Co",
		"Cedar Capital", "Lumen Solar", "Vertex Consulting",
	}
	stages  = []string{"Inbound", "Contacted", "Qualified", "Proposal", "Negotiation", lead.StageClosedWon, lead.StageClosedLost}
	owners  = []string{"Sales", "Owner", "Alex", "Jordan", "Taylor", "Sam"}
	actions = []string{"Book call", "Send proposal", "Follow up", "Re-engage", "Finalize terms", "Need intro", "Check budget"}
)

// anchors overwrite the first records so small sets still show stalled deals.
var anchors = []lead.Patch{
	{Company: lead.String("Northwind"), Stage: lead.String("Proposal"), DaysInStage: lead.String("26"), DealValue: lead.String("84000"), NextAction: lead.String("Exec follow-up")},
	{Company: lead.String("Atlas Freight"), Stage: lead.String("Negotiation"), DaysInStage: lead.String("21"), DealValue: lead.String("65000"), NextAction: lead.String("Finalize terms")},
	{Company: lead.String("Lumen Solar"), Stage: lead.String("Qualified"), DaysInStage: lead.String("18"), DealValue: lead.String("42000"), NextAction: lead.String("Send proposal")},
}

// Generate returns count synthetic records. The stream is seeded with Seed,
// so equal counts give identical output and larger counts extend smaller ones.
// Every record is stamped with now's date.
func Generate(count int, now time.Time) []lead.Record {
	if count <= 0 {
		return []lead.Record{}
	}
	f := gofakeit.New(Seed)
	today := lead.Today(now)

	rows := make([]lead.Record, 0, count)
	for i := 1; i <= count; i++ {
		company := f.RandomString(companies)
		if f.Float64() > 0.85 {
			company += " +"
		}
		stage := f.RandomString(stages)
		owner := f.RandomString(owners)

		// bimodal: a fresh base plus, sometimes, an extra stall
		days := intn(f, 18)
		if f.Float64() > 0.72 {
			days += 7 + intn(f, 18)
		}

		var value int
		switch stage {
		case lead.StageClosedWon:
			value = 8000 + intn(f, 52000)
		case lead.StageClosedLost:
			value = intn(f, 8000)
		default:
			value = 1500 + intn(f, 60000)
		}

		rows = append(rows, lead.Record{
			LeadID:      fmt.Sprintf("LEAD-%d", 5000+i),
			Company:     company,
			Stage:       stage,
			Owner:       owner,
			DaysInStage: strconv.Itoa(days),
			DealValue:   strconv.Itoa(value),
			NextAction:  f.RandomString(actions),
			LastUpdated: today,
		})
	}

	for i, a := range anchors {
		if i >= len(rows) {
			break
		}
		rows[i] = a.Apply(rows[i])
	}
	return rows
}

func intn(f *gofakeit.Faker, n int) int {
	return int(f.Float64() * float64(n))
}
