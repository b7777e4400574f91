package series

import (
	"testing"
	"time"

	"github.com/guregu/null/v6"

	"alphaview/internal/model"
)

func ts(values ...int64) []null.Int64 {
	out := make([]null.Int64, len(values))
	for i, v := range values {
		out[i] = null.NewInt(v, true)
	}
	return out
}

func prices(values ...float64) []null.Float {
	out := make([]null.Float, len(values))
	for i, v := range values {
		out[i] = null.FloatFrom(v)
	}
	return out
}

func TestNormalize_DropsNullIndices(t *testing.T) {
	timestamps := []null.Int64{
		null.NewInt(100, true),
		null.NewInt(0, false), // null timestamp
		null.NewInt(300, true),
		null.NewInt(400, true),
	}
	closes := []null.Float{
		null.FloatFrom(10),
		null.FloatFrom(11),
		null.NewFloat(0, false), // null price
		null.FloatFrom(13),
	}

	got := Normalize(timestamps, closes)
	if len(got) != 2 {
		t.Fatalf("expected 2 clean points, got %d", len(got))
	}
	if got[0].Price != 10 || got[1].Price != 13 {
		t.Errorf("wrong survivors: %+v", got)
	}
}

func TestNormalize_DuplicateTimestampsKeepFirst(t *testing.T) {
	got := Normalize(ts(100, 200, 100), prices(10, 20, 99))
	if len(got) != 2 {
		t.Fatalf("expected 2 points after dedupe, got %d", len(got))
	}
	if got[0].Price != 10 {
		t.Errorf("duplicate should keep first occurrence, got %.2f", got[0].Price)
	}
}

func TestNormalize_SortsAscending(t *testing.T) {
	got := Normalize(ts(300, 100, 200), prices(3, 1, 2))
	want := []float64{1, 2, 3}
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %d", len(got))
	}
	for i, p := range got {
		if p.Price != want[i] {
			t.Errorf("point %d: got %.2f, want %.2f", i, p.Price, want[i])
		}
		if i > 0 && !got[i-1].Time.Before(p.Time) {
			t.Errorf("not ascending at index %d", i)
		}
	}
}

func TestNormalize_MismatchedColumnLengths(t *testing.T) {
	// Upstream occasionally ships a short price column; the extra
	// timestamps have no price and are ignored.
	got := Normalize(ts(100, 200, 300), prices(10, 20))
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
}

func TestNormalize_AllNullYieldsEmpty(t *testing.T) {
	nullPrices := []null.Float{null.NewFloat(0, false), null.NewFloat(0, false)}
	got := Normalize(ts(100, 200), nullPrices)
	if len(got) != 0 {
		t.Fatalf("expected empty series, got %d points", len(got))
	}

	if got := Normalize(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty series for empty input, got %d points", len(got))
	}
}

func TestNormalize_TimesAreUTC(t *testing.T) {
	got := Normalize(ts(1700000000), prices(42))
	if len(got) != 1 {
		t.Fatalf("expected 1 point, got %d", len(got))
	}
	if got[0].Time.Location() != time.UTC {
		t.Errorf("expected UTC time, got %v", got[0].Time.Location())
	}
	if !got[0].Time.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("wrong instant: %v", got[0].Time)
	}
}

func TestFromChart_PrefersAdjustedClose(t *testing.T) {
	chart := &model.Chart{
		Timestamps: ts(100, 200),
		Close:      prices(10, 20),
		AdjClose:   prices(9, 19),
	}
	got := FromChart(chart)
	if len(got) != 2 || got[0].Price != 9 || got[1].Price != 19 {
		t.Errorf("expected adjusted closes, got %+v", got)
	}
}
