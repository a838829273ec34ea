package service

import (
	"gopkg.in/gorp.v2"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/resource/rds"
)

type ReviewService struct {
	*Service
	DB *gorp.DbMap
}

// あるレコードに対する全アノテーターの判定を取得する。
// 専門医と管理者のみ閲覧でき、権限チェックはレコードの存在確認より先に行われる。
// 権限のない呼び出しからはレコードの有無を観測できない。
func (s *ReviewService) ViewForRecord(
	viewer *model.Annotator,
	datasetId int,
	recordId int,
) ([]*model.AnnotationView, error) {
	if !C.CanReview(viewer.Role) {
		return nil, C.NewForbiddenError(
			"review_not_allowed",
			"Reviewing annotations requires expert or admin role",
			map[string]interface{}{},
		)
	}

	if r, e := rds.FetchRecordInDataset(s.DB, datasetId, recordId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewNotFoundError(
			"record_not_found",
			"Record is not found in dataset",
			map[string]interface{}{},
		)
	}

	annotations, err := rds.ListAnnotationsForRecord(s.DB, datasetId, recordId)

	if err != nil {
		return nil, C.DB_OPERATION_ERROR(err)
	}

	return s.buildViews(annotations)
}

// アノテーションの一覧に表示名を付与する。役割と病院名はアノテーション側の
// スナップショットを用いるため、アカウント側の現在値には追従しない。
func (s *ReviewService) buildViews(annotations []*model.Annotation) ([]*model.AnnotationView, error) {
	ids := []int{}
	seen := map[int]bool{}

	collect := func(id int) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, a := range annotations {
		collect(a.AnnotatorId)
		if a.ReviewedBy != nil {
			collect(*a.ReviewedBy)
		}
	}

	names := map[int]string{}

	if len(ids) > 0 {
		annotators, err := rds.ListAnnotatorsByIds(s.DB, ids)

		if err != nil {
			return nil, C.DB_OPERATION_ERROR(err)
		}

		for _, a := range annotators {
			names[a.Id] = a.Username
		}
	}

	views := []*model.AnnotationView{}

	for _, a := range annotations {
		view := &model.AnnotationView{
			Annotation:    a,
			AnnotatorName: names[a.AnnotatorId],
		}
		if a.ReviewedBy != nil {
			view.ReviewerName = names[*a.ReviewedBy]
		}
		views = append(views, view)
	}

	return views, nil
}
