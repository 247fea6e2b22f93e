package models

import "time"

// Dataset is one fetch of both dashboard indicators.
type Dataset struct {
	FetchedAt time.Time `json:"fetched_at"`
	Renewable Series    `json:"renewable"`
	CO2       Series    `json:"co2"`
}

func (d *Dataset) Table() *Table {
	return Join(d.Renewable, d.CO2)
}

// Version identifies a dataset in cache keys.
func (d *Dataset) Version() int64 {
	return d.FetchedAt.UnixNano()
}

func (d *Dataset) Empty() bool {
	return d == nil || (d.Renewable.Len() == 0 && d.CO2.Len() == 0)
}
