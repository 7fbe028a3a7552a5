package statistics

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
)

// Service computes the dashboard rollup. Pure read/reduce over events,
// colonies and ledger entries; nothing is persisted.
type Service struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a statistics service.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// ColonyStats counts colonies per status.
type ColonyStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Lost   int `json:"lost"`
	Sold   int `json:"sold"`
	Merged int `json:"merged"`
}

// ApiaryHarvest is one apiary's harvest share.
type ApiaryHarvest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// HarvestStats sums harvest amounts for the year.
type HarvestStats struct {
	Total    float64            `json:"total"`
	ByMonth  map[string]float64 `json:"byMonth"`
	ByApiary []ApiaryHarvest    `json:"byApiary"`
}

// EventStats counts the year's events.
type EventStats struct {
	Total   int            `json:"total"`
	ByType  map[string]int `json:"byType"`
	ByMonth map[string]int `json:"byMonth"`
}

// EconomyStats sums the year's ledger.
type EconomyStats struct {
	Income          float64            `json:"income"`
	Expenses        float64            `json:"expenses"`
	Profit          float64            `json:"profit"`
	IncomeVAT       float64            `json:"incomeMoms"`
	ExpensesVAT     float64            `json:"expensesMoms"`
	NetVAT          float64            `json:"netMoms"`
	IncomeByMonth   map[string]float64 `json:"incomeByMonth"`
	ExpensesByMonth map[string]float64 `json:"expensesByMonth"`
	TotalJarsSold   int                `json:"totalJarsSold"`
	JarsSoldByMonth map[string]int     `json:"jarsSoldByMonth"`
}

// ApiaryStats is one apiary's yearly rollup.
type ApiaryStats struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TotalColonies  int     `json:"totalColonies"`
	ActiveColonies int     `json:"activeColonies"`
	Harvest        float64 `json:"harvest"`
}

// YearStats is one year in the five-year harvest history.
type YearStats struct {
	Harvest  float64 `json:"harvest"`
	Colonies int     `json:"colonies"`
}

// QueenStats counts queens across active colonies.
type QueenStats struct {
	Total       int            `json:"total"`
	ByRace      map[string]int `json:"byRace"`
	ByYear      map[string]int `json:"byYear"`
	WingClipped int            `json:"wingClipped"`
}

// Report is the full dashboard payload for one year.
type Report struct {
	Year        int                  `json:"year"`
	ColonyStats ColonyStats          `json:"colonyStats"`
	Harvest     HarvestStats         `json:"harvest"`
	EventStats  EventStats           `json:"eventStats"`
	Economy     EconomyStats         `json:"economyStats"`
	Apiaries    []ApiaryStats        `json:"apiaryStats"`
	Yearly      map[string]YearStats `json:"yearlyStats"`
	Queens      QueenStats           `json:"queenStats"`
}

func monthKey(t time.Time) string {
	return t.Format("Jan")
}

// Yearly computes the dashboard report for one year. A zero year means
// the current year.
func (s *Service) Yearly(ctx context.Context, year int) (*Report, error) {
	if year == 0 {
		year = s.now().Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	apiaries, err := s.store.Apiaries().List(ctx)
	if err != nil {
		return nil, err
	}
	colonies, err := s.store.Colonies().List(ctx, repository.ColonyFilter{})
	if err != nil {
		return nil, err
	}
	events, err := s.store.Events().List(ctx, repository.EventFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	entries, err := s.store.Ledger().List(ctx, repository.LedgerFilter{Year: year})
	if err != nil {
		return nil, err
	}
	allEvents, err := s.store.Events().List(ctx, repository.EventFilter{})
	if err != nil {
		return nil, err
	}

	report := &Report{
		Year:        year,
		ColonyStats: colonyStats(colonies),
		EventStats:  eventStats(events),
		Economy:     economyStats(entries),
		Queens:      queenStats(colonies),
	}
	harvestByApiary := map[string]*ApiaryHarvest{}
	report.Harvest = harvestStats(events, harvestByApiary)
	report.Apiaries = apiaryStats(apiaries, harvestByApiary)
	report.Yearly = yearlyHistory(allEvents, s.now().Year())
	return report, nil
}

func colonyStats(colonies []models.Colony) ColonyStats {
	stats := ColonyStats{Total: len(colonies)}
	for _, c := range colonies {
		switch c.Status {
		case models.ColonyStatusActive:
			stats.Active++
		case models.ColonyStatusLost:
			stats.Lost++
		case models.ColonyStatusSold:
			stats.Sold++
		case models.ColonyStatusMerged:
			stats.Merged++
		}
	}
	return stats
}

// harvestAmount extracts mangdKg from a harvest event payload, 0 when the
// payload is missing or malformed.
func harvestAmount(event models.Event) float64 {
	if event.Type != models.EventTypeHarvest || len(event.Data) == 0 {
		return 0
	}
	var data models.HarvestData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return 0
	}
	return data.AmountKg
}

func harvestStats(events []models.Event, byApiary map[string]*ApiaryHarvest) HarvestStats {
	stats := HarvestStats{
		ByMonth:  map[string]float64{},
		ByApiary: []ApiaryHarvest{},
	}
	for _, event := range events {
		amount := harvestAmount(event)
		if amount == 0 {
			continue
		}
		stats.Total += amount
		stats.ByMonth[monthKey(event.Date)] += amount

		if event.Colony != nil && event.Colony.Apiary != nil {
			apiary := event.Colony.Apiary
			share, ok := byApiary[apiary.ID]
			if !ok {
				share = &ApiaryHarvest{Name: apiary.Name}
				byApiary[apiary.ID] = share
			}
			share.Amount += amount
		}
	}
	for _, share := range byApiary {
		stats.ByApiary = append(stats.ByApiary, *share)
	}
	return stats
}

func eventStats(events []models.Event) EventStats {
	stats := EventStats{
		Total:   len(events),
		ByType:  map[string]int{},
		ByMonth: map[string]int{},
	}
	for _, event := range events {
		stats.ByType[event.Type]++
		stats.ByMonth[monthKey(event.Date)]++
	}
	return stats
}

func economyStats(entries []models.LedgerEntry) EconomyStats {
	stats := EconomyStats{
		IncomeByMonth:   map[string]float64{},
		ExpensesByMonth: map[string]float64{},
		JarsSoldByMonth: map[string]int{},
	}
	for _, entry := range entries {
		month := monthKey(entry.Date)
		if entry.Kind == models.LedgerKindSale {
			stats.Income += entry.AmountIncVAT
			stats.IncomeVAT += entry.VATAmount
			stats.IncomeByMonth[month] += entry.AmountIncVAT
			if entry.JarCount != nil && *entry.JarCount > 0 {
				stats.TotalJarsSold += *entry.JarCount
				stats.JarsSoldByMonth[month] += *entry.JarCount
			}
		} else {
			stats.Expenses += entry.AmountIncVAT
			stats.ExpensesVAT += entry.VATAmount
			stats.ExpensesByMonth[month] += entry.AmountIncVAT
		}
	}
	stats.Profit = stats.Income - stats.Expenses
	stats.NetVAT = stats.IncomeVAT - stats.ExpensesVAT
	return stats
}

func apiaryStats(apiaries []models.Apiary, harvestByApiary map[string]*ApiaryHarvest) []ApiaryStats {
	out := make([]ApiaryStats, 0, len(apiaries))
	for _, apiary := range apiaries {
		active := 0
		for _, colony := range apiary.Colonies {
			if colony.Status == models.ColonyStatusActive {
				active++
			}
		}
		harvest := 0.0
		if share, ok := harvestByApiary[apiary.ID]; ok {
			harvest = share.Amount
		}
		out = append(out, ApiaryStats{
			ID:             apiary.ID,
			Name:           apiary.Name,
			TotalColonies:  len(apiary.Colonies),
			ActiveColonies: active,
			Harvest:        harvest,
		})
	}
	return out
}

// yearlyHistory sums harvests over the last five calendar years ending at
// currentYear.
func yearlyHistory(allEvents []models.Event, currentYear int) map[string]YearStats {
	history := map[string]YearStats{}
	for y := currentYear - 4; y <= currentYear; y++ {
		history[intKey(y)] = YearStats{}
	}
	for _, event := range allEvents {
		key := intKey(event.Date.Year())
		stats, ok := history[key]
		if !ok {
			continue
		}
		stats.Harvest += harvestAmount(event)
		history[key] = stats
	}
	return history
}

func intKey(year int) string {
	return strconv.Itoa(year)
}

func queenStats(colonies []models.Colony) QueenStats {
	stats := QueenStats{
		ByRace: map[string]int{},
		ByYear: map[string]int{},
	}
	for _, colony := range colonies {
		if colony.Status != models.ColonyStatusActive {
			continue
		}
		stats.Total++
		if colony.QueenWingClipped {
			stats.WingClipped++
		}
		if colony.QueenRace != nil && *colony.QueenRace != "" {
			stats.ByRace[*colony.QueenRace]++
		}
		if colony.QueenYear != nil && *colony.QueenYear != 0 {
			stats.ByYear[intKey(*colony.QueenYear)]++
		}
	}
	return stats
}
