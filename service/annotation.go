package service

import (
	"fmt"
	"time"

	"gopkg.in/gorp.v2"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/resource/rds"
)

type AnnotationService struct {
	*Service
	DB *gorp.DbMap
}

type AnnotationTxService struct {
	*Service
	DB *gorp.Transaction
}

// 複合キーでライブなアノテーションを取得する。未保存の場合はnilを返す。
func (s *AnnotationService) Fetch(annotatorId int, datasetId int, recordId int) (*model.Annotation, error) {
	if r, e := rds.FetchAnnotationByKey(s.DB, annotatorId, datasetId, recordId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return r, nil
	}
}

// あるユーザーのデータセット内のアノテーションを保存時刻の新しい順に取得する。
func (s *AnnotationService) ListByUserInDataset(annotatorId int, datasetId int) ([]*model.Annotation, error) {
	if r, e := rds.ListAnnotationsByUserInDataset(s.DB, annotatorId, datasetId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return r, nil
	}
}

// アノテーションの変更履歴を古い順に取得する。
func (s *AnnotationService) ListHistory(annotationId int) ([]*model.AnnotationHistory, error) {
	if r, e := rds.ListAnnotationHistory(s.DB, annotationId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return r, nil
	}
}

// AnnotationInput 保存操作の入力。ステータスはconfirmedかunsureのみ受け付ける。
type AnnotationInput struct {
	Content         string   `json:"content"`
	Findings        string   `json:"findings"`
	Status          string   `json:"status"`
	ConfidenceScore *float64 `json:"confidenceScore"`
}

// アノテーションを保存する。同一の(アノテーター, データセット, レコード)に対する
// 二回目以降の保存は新規作成ではなく上書きとなる。レビュー済みのアノテーションを
// 上書きした場合、レビュー情報は破棄され再度レビュー対象となる。
func (s *AnnotationTxService) Save(
	annotator *model.Annotator,
	datasetId int,
	recordId int,
	input *AnnotationInput,
) (*model.Annotation, error) {
	status := C.AnnotationStatus(input.Status)

	if !C.IsAnnotatableStatus(status) {
		return nil, C.INVALID_STATUS(input.Status)
	}

	if e := s.checkRecord(datasetId, recordId); e != nil {
		return nil, e
	}

	existing, err := rds.FetchAnnotationByKey(s.DB, annotator.Id, datasetId, recordId)

	if err != nil {
		return nil, C.DB_OPERATION_ERROR(err)
	}

	now := time.Now()

	if existing == nil {
		annotation := &model.Annotation{
			AnnotatorId:     annotator.Id,
			DatasetId:       datasetId,
			RecordId:        recordId,
			Content:         input.Content,
			Findings:        input.Findings,
			Status:          status,
			ConfidenceScore: input.ConfidenceScore,
			AnnotatorRole:   annotator.Role,
			HospitalName:    annotator.HospitalName,
			CreatedAt:       now,
			ModifiedAt:      now,
		}

		if e := s.DB.Insert(annotation); e != nil {
			return nil, C.DB_OPERATION_ERROR(e)
		}

		if e := s.appendHistory(annotation, annotator.Id, C.HistoryCreated, nil, nil, now); e != nil {
			return nil, e
		}

		return annotation, nil
	}

	oldStatus := string(existing.Status)
	oldContent := existing.Content

	existing.Content = input.Content
	existing.Findings = input.Findings
	existing.Status = status
	existing.ConfidenceScore = input.ConfidenceScore
	existing.AnnotatorRole = annotator.Role
	existing.HospitalName = annotator.HospitalName
	existing.ReviewedBy = nil
	existing.ReviewedAt = nil
	existing.ReviewNotes = nil
	existing.ModifiedAt = now

	if _, e := s.DB.Update(existing); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	if e := s.appendHistory(existing, annotator.Id, C.HistoryUpdated, &oldStatus, &oldContent, now); e != nil {
		return nil, e
	}

	return existing, nil
}

// アノテーションをレビュー済みにする。レビューで本文は変更されない。
func (s *AnnotationTxService) Review(
	reviewer *model.Annotator,
	annotationId int,
	notes string,
) (*model.Annotation, error) {
	annotation, err := rds.InquireAnnotation(s.DB, annotationId)

	if err != nil {
		return nil, C.DB_OPERATION_ERROR(err)
	}

	if annotation == nil {
		return nil, C.NewNotFoundError(
			"annotation_not_found",
			fmt.Sprintf("Annotation %d is not found", annotationId),
			map[string]interface{}{},
		)
	}

	oldStatus := string(annotation.Status)
	now := time.Now()

	annotation.Status = C.StatusReviewed
	annotation.ReviewedBy = &reviewer.Id
	annotation.ReviewedAt = &now
	if notes != "" {
		annotation.ReviewNotes = &notes
	} else {
		annotation.ReviewNotes = nil
	}
	annotation.ModifiedAt = now

	if _, e := s.DB.Update(annotation); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	if e := s.appendHistory(annotation, reviewer.Id, C.HistoryReviewed, &oldStatus, nil, now); e != nil {
		return nil, e
	}

	return annotation, nil
}

func (s *AnnotationTxService) checkRecord(datasetId int, recordId int) error {
	if r, e := rds.FetchRecordInDataset(s.DB, datasetId, recordId); e != nil {
		return C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return C.NewNotFoundError(
			"record_not_found",
			fmt.Sprintf("Record %d is not found in dataset %d", recordId, datasetId),
			map[string]interface{}{},
		)
	}
	return nil
}

func (s *AnnotationTxService) appendHistory(
	annotation *model.Annotation,
	actorId int,
	action C.HistoryAction,
	oldStatus *string,
	oldContent *string,
	now time.Time,
) error {
	newStatus := string(annotation.Status)

	history := &model.AnnotationHistory{
		AnnotationId: annotation.Id,
		ActorId:      actorId,
		Action:       string(action),
		OldStatus:    oldStatus,
		NewStatus:    &newStatus,
		OldContent:   oldContent,
		NewContent:   &annotation.Content,
		CreatedAt:    now,
	}

	if e := s.DB.Insert(history); e != nil {
		return C.DB_OPERATION_ERROR(e)
	}

	return nil
}
