package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gorp.v2"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/resource/rds"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/resource/waveform"
)

type DatasetService struct {
	*Service
	DB     *gorp.DbMap
	Influx lib.InfluxDBClient
}

type DatasetTxService struct {
	*Service
	DB     *gorp.Transaction
	Influx lib.InfluxDBClient
}

// 有効なデータセットの一覧を取得する。波形は含まない。
func (s *DatasetService) List() ([]*model.DatasetEntity, error) {
	if r, e := rds.ListDatasets(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return r, nil
	}
}

// UUIDからデータセットを取得する。
func (s *DatasetService) FetchByUuid(datasetUuid string) (*model.Dataset, error) {
	if r, e := rds.FetchDatasetByUuid(s.DB, datasetUuid); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil || !r.IsActive {
		return nil, C.NewNotFoundError(
			"dataset_not_found",
			fmt.Sprintf("Dataset %s is not found", datasetUuid),
			map[string]interface{}{},
		)
	} else {
		return r, nil
	}
}

// データセット内のレコードを取り込み順に取得する。波形は含まない。
func (s *DatasetService) ListRecords(datasetId int) ([]*model.Record, error) {
	if r, e := rds.ListRecordsInDataset(s.DB, datasetId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return r, nil
	}
}

// データセット内のレコードを誘導波形付きで取得する。
// 波形はこの時点で初めてInfluxDBから読みだされる。
func (s *DatasetService) FetchRecord(datasetId int, recordId int) (*model.RecordEntity, error) {
	record, err := s.fetchRecordRow(datasetId, recordId)

	if err != nil {
		return nil, err
	}

	samples, err := waveform.ListLeadSamples(s.Influx, record)

	if err != nil {
		return nil, C.INFLUXDB_OPERATION_ERROR(err)
	}

	leads := make([][]float64, len(C.LeadNames))
	for i, name := range C.LeadNames {
		leads[i] = samples[name]
	}

	return &model.RecordEntity{
		Record:    record,
		LeadNames: C.LeadNames,
		Leads:     leads,
	}, nil
}

// レコードがデータセットに属するか調べる。
func (s *DatasetService) CheckRecordInDataset(datasetId int, recordId int) error {
	if _, e := s.fetchRecordRow(datasetId, recordId); e != nil {
		return e
	}
	return nil
}

func (s *DatasetService) fetchRecordRow(datasetId int, recordId int) (*model.Record, error) {
	if r, e := rds.FetchRecordInDataset(s.DB, datasetId, recordId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewNotFoundError(
			"record_not_found",
			fmt.Sprintf("Record %d is not found in dataset %d", recordId, datasetId),
			map[string]interface{}{},
		)
	} else {
		return r, nil
	}
}

// RecordIngestInput 取り込み経路から渡される一レコード分の入力。
// 誘導波形が与えられない場合、波形なしのレコードとして登録される。
type RecordIngestInput struct {
	PatientId    string      `json:"patientId"`
	Timestamp    time.Time   `json:"timestamp"`
	HeartRate    int         `json:"heartRate"`
	PrInterval   int         `json:"prInterval"`
	QrsDuration  int         `json:"qrsDuration"`
	QtInterval   int         `json:"qtInterval"`
	AutoAnalysis string      `json:"autoAnalysis"`
	SamplingRate int         `json:"samplingRate"`
	LeadNames    []string    `json:"leadNames"`
	Leads        [][]float64 `json:"leads"`
}

// データセットを一括登録する。取り込み後の変更は行われない。
// 全レコードの誘導構成は先頭レコードと一致しなければならない。
func (s *DatasetTxService) Register(
	name string,
	description string,
	uploaderId int,
	inputs []*RecordIngestInput,
) (*model.DatasetEntity, error) {
	if len(inputs) == 0 {
		return nil, C.NewBadRequestError(
			"empty_records",
			"At least one record is required to create a dataset",
			map[string]interface{}{},
		)
	}

	if e := validateLeadShapes(inputs); e != nil {
		return nil, e
	}

	now := time.Now()

	dataset := &model.Dataset{
		Uuid:        uuid.NewString(),
		Name:        name,
		Description: description,
		UploadedBy:  uploaderId,
		UploadDate:  now,
		IsActive:    true,
		CreatedAt:   now,
	}

	if e := s.DB.Insert(dataset); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	records := []interface{}{}

	for i, input := range inputs {
		samplingRate := input.SamplingRate
		if samplingRate <= 0 {
			samplingRate = C.DefaultSamplingRate
		}

		sampleCount := 0
		if len(input.Leads) > 0 {
			sampleCount = len(input.Leads[0])
		}

		timestamp := input.Timestamp
		if timestamp.IsZero() {
			timestamp = now
		}

		records = append(records, &model.Record{
			Uuid:         uuid.NewString(),
			DatasetId:    dataset.Id,
			RecordNumber: i + 1,
			PatientId:    input.PatientId,
			Timestamp:    timestamp,
			HeartRate:    input.HeartRate,
			PrInterval:   input.PrInterval,
			QrsDuration:  input.QrsDuration,
			QtInterval:   input.QtInterval,
			AutoAnalysis: input.AutoAnalysis,
			SamplingRate: samplingRate,
			SampleCount:  sampleCount,
			CreatedAt:    now,
		})
	}

	if e := s.DB.Insert(records...); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	for i, input := range inputs {
		if len(input.Leads) == 0 {
			continue
		}

		record := records[i].(*model.Record)

		if errors := waveform.InsertLeadSamples(s.Influx, record, input.LeadNames, input.Leads); len(errors) > 0 {
			return nil, C.INFLUXDB_OPERATION_ERROR(errors[0])
		}
	}

	return &model.DatasetEntity{
		Dataset:     dataset,
		RecordCount: len(records),
	}, nil
}

// CSVから一括登録する。不正な行はスキップして数え、有効な行が一つもない場合のみ失敗する。
// 作成されたレコード数とスキップした行数を返す。
func (s *DatasetTxService) RegisterFromCSV(
	name string,
	description string,
	uploaderId int,
	content string,
) (*model.DatasetEntity, int, error) {
	result := lib.ParseECGCSV(content, time.Now())

	if len(result.Rows) == 0 {
		return nil, result.SkippedLines, C.EMPTY_INGEST_ERROR
	}

	inputs := []*RecordIngestInput{}

	for _, row := range result.Rows {
		inputs = append(inputs, &RecordIngestInput{
			PatientId:    row.PatientId,
			Timestamp:    row.Timestamp,
			HeartRate:    row.HeartRate,
			PrInterval:   row.PrInterval,
			QrsDuration:  row.QrsDuration,
			QtInterval:   row.QtInterval,
			AutoAnalysis: row.AutoAnalysis,
		})
	}

	dataset, err := s.Register(name, description, uploaderId, inputs)

	if err != nil {
		return nil, result.SkippedLines, err
	}

	return dataset, result.SkippedLines, nil
}

// データセットを配下のレコード・アノテーション・監査ログ・波形ごと削除する。
func (s *DatasetTxService) Delete(datasetUuid string) error {
	dataset, err := rds.FetchDatasetByUuid(s.DB, datasetUuid)

	if err != nil {
		return C.DB_OPERATION_ERROR(err)
	}

	if dataset == nil {
		return C.NewNotFoundError(
			"dataset_not_found",
			fmt.Sprintf("Dataset %s is not found", datasetUuid),
			map[string]interface{}{},
		)
	}

	records, err := rds.ListRecordsInDataset(s.DB, dataset.Id)

	if err != nil {
		return C.DB_OPERATION_ERROR(err)
	}

	if e := rds.DeleteHistoryInDataset(s.DB, dataset.Id); e != nil {
		return C.DB_OPERATION_ERROR(e)
	}

	if e := rds.DeleteAnnotationsInDataset(s.DB, dataset.Id); e != nil {
		return C.DB_OPERATION_ERROR(e)
	}

	if e := rds.DeleteRecordsInDataset(s.DB, dataset.Id); e != nil {
		return C.DB_OPERATION_ERROR(e)
	}

	if e := rds.DeleteDataset(s.DB, dataset.Id); e != nil {
		return C.DB_OPERATION_ERROR(e)
	}

	if e := waveform.DeleteLeadSamples(s.Influx, records); e != nil {
		return C.INFLUXDB_OPERATION_ERROR(e)
	}

	return nil
}

// 先頭レコードを基準に誘導数・誘導名・サンプル数の一致を確認する。
// 各レコード内でも誘導名と波形の本数が一致しなければならない。
func validateLeadShapes(inputs []*RecordIngestInput) error {
	first := inputs[0]

	mismatch := func(index int, reason string) error {
		return C.NewBadRequestError(
			"lead_shape_mismatch",
			fmt.Sprintf("Record %d does not match the lead shape of the first record: %s", index, reason),
			map[string]interface{}{"Index": index},
		)
	}

	for i, input := range inputs {
		if len(input.Leads) != len(input.LeadNames) {
			return mismatch(i, "lead name count does not match lead count")
		}
		if len(input.Leads) != len(first.Leads) {
			return mismatch(i, "lead count")
		}
		if len(input.LeadNames) != len(first.LeadNames) {
			return mismatch(i, "lead name count")
		}
		for li, name := range input.LeadNames {
			if name != first.LeadNames[li] {
				return mismatch(i, "lead names")
			}
		}
		for li, lead := range input.Leads {
			if len(lead) != len(first.Leads[li]) {
				return mismatch(i, "sample count")
			}
		}
	}

	return nil
}
