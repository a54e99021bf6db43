// Package marketdata supplies curve, volatility, and fixing inputs to the
// pricing commands, either from a Postgres store or from static feeds.
package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	_ "github.com/lib/pq"

	"github.com/meenmo/caplib/schedule"
)

// Store reads market data snapshots from Postgres.
type Store struct {
	db *sql.DB
}

// Open connects to the market-data database.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening market data store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// CurvePoint is one (date, value) pivot of a stored curve.
type CurvePoint struct {
	Date  time.Time
	Value float64
}

// DiscountFactors loads the discount pivots of a named curve snapshot,
// ordered by pivot date.
func (s *Store) DiscountFactors(ctx context.Context, curve string, asOf time.Time) ([]CurvePoint, error) {
	return s.curvePoints(ctx, `
		SELECT pivot_date, discount_factor
		FROM discount_curves
		WHERE curve_name = $1 AND as_of = $2
		ORDER BY pivot_date`, curve, asOf)
}

// ForwardRates loads the instantaneous forward pivots of a named curve
// snapshot, ordered by pivot date.
func (s *Store) ForwardRates(ctx context.Context, curve string, asOf time.Time) ([]CurvePoint, error) {
	return s.curvePoints(ctx, `
		SELECT pivot_date, forward_rate
		FROM forward_curves
		WHERE curve_name = $1 AND as_of = $2
		ORDER BY pivot_date`, curve, asOf)
}

func (s *Store) curvePoints(ctx context.Context, query, curve string, asOf time.Time) ([]CurvePoint, error) {
	rows, err := s.db.QueryContext(ctx, query, curve, asOf)
	if err != nil {
		return nil, fmt.Errorf("querying curve %s: %w", curve, err)
	}
	defer rows.Close()

	var points []CurvePoint
	for rows.Next() {
		var p CurvePoint
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, fmt.Errorf("scanning curve %s: %w", curve, err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("curve %s has no pivots as of %s", curve, asOf.Format("2006-01-02"))
	}
	return points, nil
}

// VolGrid is a cap volatility quote grid: one flat vol per expiry tenor
// and strike.
type VolGrid struct {
	Expiries []schedule.Period
	Strikes  []float64
	Vols     [][]float64 // [expiry][strike]
}

// CapVolGrid loads a named cap volatility surface snapshot. Every
// (expiry, strike) cell must be quoted.
func (s *Store) CapVolGrid(ctx context.Context, surface string, asOf time.Time) (*VolGrid, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT expiry_tenor, strike, volatility
		FROM cap_volatilities
		WHERE surface_name = $1 AND as_of = $2`, surface, asOf)
	if err != nil {
		return nil, fmt.Errorf("querying vol surface %s: %w", surface, err)
	}
	defer rows.Close()

	type cell struct {
		tenor  string
		strike float64
		vol    float64
	}
	var cells []cell
	for rows.Next() {
		var c cell
		if err := rows.Scan(&c.tenor, &c.strike, &c.vol); err != nil {
			return nil, fmt.Errorf("scanning vol surface %s: %w", surface, err)
		}
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("vol surface %s has no quotes as of %s", surface, asOf.Format("2006-01-02"))
	}

	expirySet := make(map[string]schedule.Period)
	strikeSet := make(map[float64]struct{})
	for _, c := range cells {
		if _, ok := expirySet[c.tenor]; !ok {
			p, err := schedule.ParsePeriod(c.tenor)
			if err != nil {
				return nil, fmt.Errorf("vol surface %s expiry %q: %w", surface, c.tenor, err)
			}
			expirySet[c.tenor] = p
		}
		strikeSet[c.strike] = struct{}{}
	}

	grid := &VolGrid{}
	tenors := make([]string, 0, len(expirySet))
	for t := range expirySet {
		tenors = append(tenors, t)
	}
	sort.Slice(tenors, func(i, j int) bool {
		return expirySet[tenors[i]].Months() < expirySet[tenors[j]].Months()
	})
	for _, t := range tenors {
		grid.Expiries = append(grid.Expiries, expirySet[t])
	}
	for k := range strikeSet {
		grid.Strikes = append(grid.Strikes, k)
	}
	sort.Float64s(grid.Strikes)

	strikeIdx := make(map[float64]int, len(grid.Strikes))
	for j, k := range grid.Strikes {
		strikeIdx[k] = j
	}
	tenorIdx := make(map[string]int, len(tenors))
	for i, t := range tenors {
		tenorIdx[t] = i
	}

	grid.Vols = make([][]float64, len(grid.Expiries))
	seen := make([][]bool, len(grid.Expiries))
	for i := range grid.Vols {
		grid.Vols[i] = make([]float64, len(grid.Strikes))
		seen[i] = make([]bool, len(grid.Strikes))
	}
	for _, c := range cells {
		i, j := tenorIdx[c.tenor], strikeIdx[c.strike]
		grid.Vols[i][j] = c.vol
		seen[i][j] = true
	}
	for i := range seen {
		for j := range seen[i] {
			if !seen[i][j] {
				return nil, fmt.Errorf("vol surface %s missing quote at %s / %.4f",
					surface, tenors[i], grid.Strikes[j])
			}
		}
	}
	return grid, nil
}

// Fixings loads historical index fixings over [from, to], keyed by fixing
// date at midnight UTC.
func (s *Store) Fixings(ctx context.Context, index string, from, to time.Time) (map[time.Time]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fixing_date, rate
		FROM index_fixings
		WHERE index_name = $1 AND fixing_date BETWEEN $2 AND $3
		ORDER BY fixing_date`, index, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying fixings for %s: %w", index, err)
	}
	defer rows.Close()

	fixings := make(map[time.Time]float64)
	for rows.Next() {
		var date time.Time
		var rate float64
		if err := rows.Scan(&date, &rate); err != nil {
			return nil, fmt.Errorf("scanning fixings for %s: %w", index, err)
		}
		key := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		fixings[key] = rate
	}
	return fixings, rows.Err()
}
