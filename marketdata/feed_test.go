package marketdata_test

import (
	"testing"
	"time"

	"github.com/meenmo/caplib/marketdata"
)

func TestMapFixingFeed(t *testing.T) {
	t.Parallel()

	feed := marketdata.NewMapFixingFeed(map[string]float64{
		"2022-04-01": 0.0312,
		"2022-07-01": 0.0344,
	})

	rate, ok := feed.RateOn(time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC))
	if !ok || rate != 0.0312 {
		t.Fatalf("RateOn known date: got (%v, %v)", rate, ok)
	}
	if _, ok := feed.RateOn(time.Date(2022, 4, 2, 0, 0, 0, 0, time.UTC)); ok {
		t.Fatalf("RateOn unknown date should report absence")
	}
}
