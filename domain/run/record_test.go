package run

import (
	"encoding/json"
	"testing"

	"factcheck/domain/core"

	"github.com/stretchr/testify/assert"
)

func validRecord() Record {
	return Record{
		ID:          core.NewRunID(),
		Source:      "sales",
		Rows:        10,
		Columns:     3,
		Fingerprint: core.NewReportHash([]byte("report")),
		Report:      json.RawMessage(`{"columns":[],"rows":[]}`),
	}
}

func TestRecordValidate(t *testing.T) {
	r := validRecord()
	assert.NoError(t, r.Validate())

	tests := map[string]func(*Record){
		"missing id":          func(r *Record) { r.ID = "" },
		"missing source":      func(r *Record) { r.Source = "" },
		"missing fingerprint": func(r *Record) { r.Fingerprint = "" },
		"missing report":      func(r *Record) { r.Report = nil },
		"invalid report":      func(r *Record) { r.Report = json.RawMessage(`{`) },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			r := validRecord()
			mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestRecordSummaryAndSaved(t *testing.T) {
	r := validRecord()
	assert.False(t, r.Saved())

	r.OutputPath = "out/sales_fact_checks.xlsx"
	assert.True(t, r.Saved())

	s := r.Summary()
	assert.Nil(t, s.Report)
	assert.NotNil(t, r.Report)
	assert.Equal(t, r.ID, s.ID)
}
