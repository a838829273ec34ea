package model

import (
	"math"
)

// アップローダー情報とレコード数を持つデータセット。一覧表示向けで波形は含まない。
type DatasetEntity struct {
	*Dataset
	Uploader    *Annotator `json:"uploader"`
	RecordCount int        `json:"recordCount"`
}

// 誘導波形付きのレコード。Leadsの並びはLeadNamesに対応する。
type RecordEntity struct {
	*Record
	LeadNames []string    `json:"leadNames"`
	Leads     [][]float64 `json:"leads"`
}

// レビュー画面用のアノテーション。役割と病院名はアノテーション側のスナップショットを用いる。
type AnnotationView struct {
	*Annotation
	AnnotatorName string `json:"annotatorName"`
	ReviewerName  string `json:"reviewerName,omitempty"`
}

// あるユーザーのデータセット進捗。
type UserProgress struct {
	Annotated  int     `json:"annotated"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// データセット全体のカバレッジ。複数人が同一レコードを判定しても一件として数える。
type DatasetCoverage struct {
	TotalRecords       int     `json:"totalRecords"`
	AnnotatedRecords   int     `json:"annotatedRecords"`
	DistinctAnnotators int     `json:"distinctAnnotators"`
	CoveragePct        float64 `json:"coveragePct"`
}

// ユーザーの横断統計。
type UserStats struct {
	TotalAnnotations int `json:"totalAnnotations"`
	DatasetsWorkedOn int `json:"datasetsWorkedOn"`
}

// プラットフォーム全体の件数。
type PlatformStats struct {
	TotalDatasets    int `json:"totalDatasets"`
	TotalRecords     int `json:"totalRecords"`
	TotalUsers       int `json:"totalUsers"`
	TotalAnnotations int `json:"totalAnnotations"`
}

// 直近のアノテーション活動。
type ActivityEntry struct {
	*Annotation
	AnnotatorName string `json:"annotatorName"`
	PatientId     string `json:"patientId"`
	DatasetName   string `json:"datasetName"`
}

// 再開位置。Doneは全レコード判定済みで先頭に巻き戻したことを示す。
type ResumePoint struct {
	Index int  `json:"index"`
	Done  bool `json:"done"`
}

// 完了率を百分率で返す。総数0の場合は0として扱い、ゼロ除算を避ける。
func CompletionRate(part int, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

// 取り込み順のレコードID列と最後に保存されたレコードIDから再開位置を求める。
// 最終レコードまで判定済みの場合は先頭に巻き戻し、完了を第二戻り値で通知する。
// lastAnnotatedIdが列に見つからない場合は先頭から開始する。
func ResumePosition(orderedIds []int, lastAnnotatedId int) (int, bool) {
	for i, id := range orderedIds {
		if id == lastAnnotatedId {
			next := i + 1
			if next >= len(orderedIds) {
				return 0, true
			}
			return next, false
		}
	}
	return 0, false
}
