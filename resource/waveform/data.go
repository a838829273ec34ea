package waveform

import (
	"fmt"
	"time"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

// レコードの全誘導波形を保存する。サンプル時刻はレコードの計測開始時刻から
// サンプリングレートに基づき等間隔に割り当てる。
func InsertLeadSamples(
	influx lib.InfluxDBClient,
	record *model.Record,
	leadNames []string,
	leads [][]float64,
) []error {
	interval := time.Second / time.Duration(record.SamplingRate)

	points := []lib.Point{}

	for li, name := range leadNames {
		for si, value := range leads[li] {
			points = append(points, &model.LeadSample{
				RecordUuid: record.Uuid,
				Lead:       name,
				Value:      value,
				ObservedAt: record.Timestamp.Add(time.Duration(si) * interval),
			})
		}
	}

	return influx.Insert(C.WaveformBucket, points...)
}

// 複数レコードの全誘導波形を削除する。データセット削除時に呼び出される。
func DeleteLeadSamples(
	influx lib.InfluxDBClient,
	records []*model.Record,
) error {
	for _, record := range records {
		predicate := fmt.Sprintf(
			`_measurement="%s" AND record_uuid="%s"`,
			C.WaveformMeasurement, record.Uuid,
		)

		if e := influx.DeleteAll(C.WaveformBucket, predicate); e != nil {
			return e
		}
	}

	return nil
}

// レコードの誘導波形を誘導名毎に古い順で取得する。
// 取り込まれていないレコードでは空のマップを返す。
func ListLeadSamples(
	influx lib.InfluxDBClient,
	record *model.Record,
) (map[string][]float64, error) {
	begin := record.Timestamp.Add(-time.Second)
	end := record.Timestamp.Add(time.Duration(record.SampleCount+1) * time.Second)

	query := fmt.Sprintf(
		`from(bucket:"%s")
			|> range(start:%d, stop:%d)
			|> filter(fn: (r) => r._measurement == "%s" and r.record_uuid == "%s")
			|> group(columns:["lead"])
			|> sort(columns:["_time"])`,
		C.WaveformBucket,
		begin.Unix(), end.Unix(),
		C.WaveformMeasurement, record.Uuid,
	)

	results := map[string][]float64{}

	if e := influx.Select(query, lib.PointConsumer(func(p lib.Point, field string) error {
		if m, ok := p.(*model.LeadSample); !ok {
			return fmt.Errorf("Invalid measurement type for lead sample: %s", p.Measurement())
		} else {
			results[m.Lead] = append(results[m.Lead], m.Value)
			return nil
		}
	})); e != nil {
		return nil, e
	}

	return results, nil
}
