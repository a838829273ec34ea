package model

import (
	"database/sql/driver"
	"errors"
	"time"

	"gopkg.in/gorp.v2"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
)

// QueryExecutor DbMapとTransactionの共通インタフェース。
type QueryExecutor = gorp.SqlExecutor

// JSON JSONBカラムのラッパー。
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = JSON(v)
		return nil
	default:
		return errors.New("incompatible type for JSON column")
	}
}

// Annotator アノテーションを行うアカウント。管理者・専門医も同一テーブルで役割により区別する。
type Annotator struct {
	Id           int       `db:"id" json:"id"`
	Uuid         string    `db:"uuid" json:"uuid"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	Password     string    `db:"password" json:"-"`
	Role         C.Role    `db:"role" json:"role"`
	HospitalName string    `db:"hospital_name" json:"hospitalName"`
	TokenVersion string    `db:"token_version" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	ModifiedAt   time.Time `db:"modified_at" json:"modifiedAt"`
}

// Dataset 一括アップロードされたレコードの集合。取り込み後は不変。
type Dataset struct {
	Id          int       `db:"id" json:"id"`
	Uuid        string    `db:"uuid" json:"uuid"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	UploadedBy  int       `db:"uploaded_by" json:"uploadedBy"`
	UploadDate  time.Time `db:"upload_date" json:"uploadDate"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	Metadata    JSON      `db:"metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Record 一人の被験者の12誘導心電図と臨床スカラー値。取り込み後は不変。
// 波形サンプルはInfluxDBに保存され、レコード単位で遅延取得される。
type Record struct {
	Id           int       `db:"id" json:"id"`
	Uuid         string    `db:"uuid" json:"uuid"`
	DatasetId    int       `db:"dataset_id" json:"datasetId"`
	RecordNumber int       `db:"record_number" json:"recordNumber"`
	PatientId    string    `db:"patient_id" json:"patientId"`
	Timestamp    time.Time `db:"timestamp" json:"timestamp"`
	HeartRate    int       `db:"heart_rate" json:"heartRate"`
	PrInterval   int       `db:"pr_interval" json:"prInterval"`
	QrsDuration  int       `db:"qrs_duration" json:"qrsDuration"`
	QtInterval   int       `db:"qt_interval" json:"qtInterval"`
	AutoAnalysis string    `db:"auto_analysis" json:"autoAnalysis"`
	SamplingRate int       `db:"sampling_rate" json:"samplingRate"`
	SampleCount  int       `db:"sample_count" json:"sampleCount"`
	Metadata     JSON      `db:"metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Annotation (アノテーター, データセット, レコード)毎に高々一つ存在する診断判定。
// 保存の度に内容とタイムスタンプを上書きする。役割と病院名は保存時点のスナップショット。
type Annotation struct {
	Id              int                `db:"id" json:"id"`
	AnnotatorId     int                `db:"annotator_id" json:"annotatorId"`
	DatasetId       int                `db:"dataset_id" json:"datasetId"`
	RecordId        int                `db:"record_id" json:"recordId"`
	Content         string             `db:"content" json:"content"`
	Findings        string             `db:"findings" json:"findings"`
	Status          C.AnnotationStatus `db:"status" json:"status"`
	ConfidenceScore *float64           `db:"confidence_score" json:"confidenceScore"`
	AnnotatorRole   C.Role             `db:"annotator_role" json:"annotatorRole"`
	HospitalName    string             `db:"hospital_name" json:"hospitalName"`
	ReviewedBy      *int               `db:"reviewed_by" json:"reviewedBy"`
	ReviewedAt      *time.Time         `db:"reviewed_at" json:"reviewedAt"`
	ReviewNotes     *string            `db:"review_notes" json:"reviewNotes"`
	CreatedAt       time.Time          `db:"created_at" json:"createdAt"`
	ModifiedAt      time.Time          `db:"modified_at" json:"modifiedAt"`
}

// AnnotationHistory 保存・レビュー操作毎に追記される監査ログ。
type AnnotationHistory struct {
	Id           int       `db:"id" json:"id"`
	AnnotationId int       `db:"annotation_id" json:"annotationId"`
	ActorId      int       `db:"actor_id" json:"actorId"`
	Action       string    `db:"action" json:"action"`
	OldStatus    *string   `db:"old_status" json:"oldStatus"`
	NewStatus    *string   `db:"new_status" json:"newStatus"`
	OldContent   *string   `db:"old_content" json:"oldContent"`
	NewContent   *string   `db:"new_content" json:"newContent"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

func SetupModels() {
	lib.RegisterPointType(func() lib.Point { return &LeadSample{} })

	for _, key := range []string{lib.WriteDBKey, lib.ReadDBKey} {
		dbmap := lib.GetDB(key)

		if dbmap == nil {
			continue
		}

		dbmap.AddTableWithName(Annotator{}, "annotator").SetKeys(true, "Id")
		dbmap.AddTableWithName(Dataset{}, "dataset").SetKeys(true, "Id")
		dbmap.AddTableWithName(Record{}, "ecg_record").SetKeys(true, "Id")
		dbmap.AddTableWithName(Annotation{}, "annotation").SetKeys(true, "Id")
		dbmap.AddTableWithName(AnnotationHistory{}, "annotation_history").SetKeys(true, "Id")
	}
}
