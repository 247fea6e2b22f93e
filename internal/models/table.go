package models

import "sort"

// JoinedRecord holds both indicator values of a (country, year) pair.
// A nil value means the indicator had no observation for that pair.
type JoinedRecord struct {
	CountryCode string   `json:"country_code"`
	CountryName string   `json:"country_name"`
	Year        int      `json:"year"`
	A           *float64 `json:"a"`
	B           *float64 `json:"b"`
}

func (r JoinedRecord) Complete() bool {
	return r.A != nil && r.B != nil
}

type Table struct {
	A       Indicator      `json:"a"`
	B       Indicator      `json:"b"`
	Records []JoinedRecord `json:"records"`
}

// Join merges two series on (country code, year). Every pair present in
// either series yields exactly one record; a value missing on one side is nil.
func Join(a, b Series) *Table {
	rows := make(map[Key]*JoinedRecord, len(a.Observations)+len(b.Observations))
	row := func(o Observation) *JoinedRecord {
		r, ok := rows[o.Key()]
		if !ok {
			r = &JoinedRecord{CountryCode: o.CountryCode, Year: o.Year}
			rows[o.Key()] = r
		}
		if r.CountryName == "" {
			r.CountryName = o.CountryName
		}
		return r
	}

	for _, o := range a.Observations {
		v := o.Value
		row(o).A = &v
	}
	for _, o := range b.Observations {
		v := o.Value
		row(o).B = &v
	}

	t := &Table{A: a.Indicator, B: b.Indicator, Records: make([]JoinedRecord, 0, len(rows))}
	for _, r := range rows {
		t.Records = append(t.Records, *r)
	}
	sort.Slice(t.Records, func(i, j int) bool {
		if t.Records[i].CountryCode != t.Records[j].CountryCode {
			return t.Records[i].CountryCode < t.Records[j].CountryCode
		}
		return t.Records[i].Year < t.Records[j].Year
	})
	return t
}

func (t *Table) Len() int {
	return len(t.Records)
}

func (t *Table) filter(keep func(JoinedRecord) bool) *Table {
	out := &Table{A: t.A, B: t.B, Records: make([]JoinedRecord, 0, len(t.Records))}
	for _, r := range t.Records {
		if keep(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// Complete returns the records carrying both values.
func (t *Table) Complete() *Table {
	return t.filter(JoinedRecord.Complete)
}

func (t *Table) ForYear(year int) *Table {
	return t.filter(func(r JoinedRecord) bool { return r.Year == year })
}

// Get looks up the record of a (country, year) pair.
func (t *Table) Get(code string, year int) (JoinedRecord, bool) {
	i := sort.Search(len(t.Records), func(i int) bool {
		r := t.Records[i]
		if r.CountryCode != code {
			return r.CountryCode >= code
		}
		return r.Year >= year
	})
	if i < len(t.Records) && t.Records[i].CountryCode == code && t.Records[i].Year == year {
		return t.Records[i], true
	}
	return JoinedRecord{}, false
}
