package constant

// Language 言語。
type Language string

const (
	LanguageJa Language = "ja" // 日本語。
	LanguageEn Language = "en" // 英語。
)

// Role アカウントの役割。
type Role string

const (
	RoleAnnotator Role = "annotator"
	RoleExpert    Role = "expert"
	RoleAdmin     Role = "admin"
)

var Roles = []Role{RoleAnnotator, RoleExpert, RoleAdmin}

// 有効な役割か調べる。
func IsValidRole(role Role) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// レビュー権限を持つ役割か調べる。
func CanReview(role Role) bool {
	return role == RoleExpert || role == RoleAdmin
}

// AnnotationStatus アノテーションの状態。
type AnnotationStatus string

const (
	StatusConfirmed AnnotationStatus = "confirmed"
	StatusUnsure    AnnotationStatus = "unsure"
	StatusReviewed  AnnotationStatus = "reviewed"
)

var AnnotationStatuses = []AnnotationStatus{StatusConfirmed, StatusUnsure, StatusReviewed}

// アノテーターが保存時に指定できる状態か調べる。reviewedはレビュー操作専用。
func IsAnnotatableStatus(status AnnotationStatus) bool {
	return status == StatusConfirmed || status == StatusUnsure
}

// 有効な状態か調べる。
func IsValidStatus(status AnnotationStatus) bool {
	for _, s := range AnnotationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// HistoryAction アノテーション履歴の操作種別。
type HistoryAction string

const (
	HistoryCreated  HistoryAction = "created"
	HistoryUpdated  HistoryAction = "updated"
	HistoryReviewed HistoryAction = "reviewed"
)

// 12誘導の誘導名。データセット内の全レコードで共通。
var LeadNames = []string{"I", "II", "III", "aVR", "aVL", "aVF", "V1", "V2", "V3", "V4", "V5", "V6"}

// InfluxDB関連。
const (
	// WaveformBucket 波形サンプルを保存するバケット名。
	WaveformBucket string = "ecg"
	// WaveformMeasurement 波形サンプルのmeasurement名。
	WaveformMeasurement string = "ecg_waveform"
)

// 取り込み関連。
const (
	// IngestFieldCount CSV1行に要求されるフィールド数。
	IngestFieldCount int = 12
	// DefaultSamplingRate 既定のサンプリングレート(Hz)。
	DefaultSamplingRate int = 500
	// DefaultHeartRate 欠損時の既定心拍数。
	DefaultHeartRate int = 75
	// DefaultPRInterval 欠損時の既定PR間隔(ms)。
	DefaultPRInterval int = 160
	// DefaultQRSDuration 欠損時の既定QRS幅(ms)。
	DefaultQRSDuration int = 90
	// DefaultQTInterval 欠損時の既定QT間隔(ms)。
	DefaultQTInterval int = 380
	// DefaultAutoAnalysis 自動解析テキストの既定値。
	DefaultAutoAnalysis string = "Automatic analysis pending"
)
