package model

import (
	"fmt"
	"time"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
)

// LeadSample 一誘導の一サンプル値。InfluxDBではレコードUUIDと誘導名のタグを持つ。
type LeadSample struct {
	RecordUuid string    `json:"recordUuid"`
	Lead       string    `json:"lead"`
	Value      float64   `json:"value"`
	ObservedAt time.Time `json:"observedAt"`
}

func (p *LeadSample) Measurement() string {
	return C.WaveformMeasurement
}

func (p *LeadSample) FromRecord(r *lib.PointRecord) error {
	recordUuid, be := r.Tags["record_uuid"]
	if !be {
		return fmt.Errorf("record_uuid tag is not found in %s", r.Measurement)
	}

	lead, be := r.Tags["lead"]
	if !be {
		return fmt.Errorf("lead tag is not found in %s", r.Measurement)
	}

	value, ok := r.Value.(float64)
	if !ok {
		return fmt.Errorf("Invalid sample value: %v", r.Value)
	}

	p.RecordUuid = recordUuid
	p.Lead = lead
	p.Value = value
	p.ObservedAt = r.Timestamp

	return nil
}

func (p *LeadSample) ToRecord(s *lib.SchemaRecord) {
	s.Measurement = p.Measurement()
	s.Tags["record_uuid"] = p.RecordUuid
	s.Tags["lead"] = p.Lead
	s.Fields["value"] = p.Value
	s.Timestamp = p.ObservedAt
}
