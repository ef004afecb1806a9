package util

import (
	"testing"
)

type CSVStopTest struct {
	ID  string  `csv:"stop_id"`
	Lon float64 `csv:"stop_lon"`
	Lat float64 `csv:"stop_lat"`
	Seq int     `csv:"stop_sequence"`
}

func TestCSVSimple(t *testing.T) {
	file := "./testdata/stops.csv"

	i := 0
	for row := range ReadCSVFromFile[CSVStopTest](file, ',') {
		if i == 0 {
			if row.ID != "s1" || row.Lon != 7.01 || row.Lat != 51.25 || row.Seq != 1 {
				t.Errorf("row = %v; want s1 7.01 51.25 1", row)
			}
		} else if i == 1 {
			if row.ID != "s2" || row.Lon != 7.02 || row.Lat != 51.26 || row.Seq != 2 {
				t.Errorf("row = %v; want s2 7.02 51.26 2", row)
			}
		} else {
			t.Errorf("too many rows")
		}
		i++
	}
	if i != 2 {
		t.Errorf("rows = %v; want 2", i)
	}
}

func TestCSVMissingValues(t *testing.T) {
	file := "./testdata/stops_missing.csv"

	i := 0
	for row := range ReadCSVFromFile[CSVStopTest](file, ',') {
		if i == 0 {
			// empty lon column keeps the zero value
			if row.ID != "s1" || row.Lon != 0 || row.Seq != 1 {
				t.Errorf("row = %v; want s1 0 1", row)
			}
		} else if i == 1 {
			if row.ID != "" || row.Seq != 2 {
				t.Errorf("row = %v; want empty id, seq 2", row)
			}
		}
		i++
	}
	if i != 2 {
		t.Errorf("rows = %v; want 2", i)
	}
}
