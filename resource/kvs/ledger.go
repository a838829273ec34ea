package kvs

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

// Ledger 三つのJSONドキュメント(users, datasets, annotations)に対する台帳操作。
// リレーショナルデプロイと同じ操作群を、取得した行の畳み込みで実現する。
// ドキュメントの読み取り-更新-書き込みはミューテックスで直列化するため、
// 異なるキーへの書き込みが互いのアノテーションを壊すことはない。
type Ledger struct {
	store lib.KVSClient
	mu    sync.Mutex
}

func NewLedger(store lib.KVSClient) *Ledger {
	return &Ledger{store: store}
}

func recordKey(recordId int) string {
	return strconv.Itoa(recordId)
}

//----------------------------------------------------------------
// ユーザー
//----------------------------------------------------------------

// ユーザーを登録する。ユーザー名は一意。
func (l *Ledger) RegisterUser(
	ctx context.Context,
	username string,
	email string,
	passwordHash string,
	role C.Role,
	hospitalName string,
) (*model.Annotator, error) {
	if !C.IsValidRole(role) {
		return nil, C.INVALID_ROLE(string(role))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	users := UsersDocument{}

	if e := loadDocument(ctx, l.store, UsersKey, &users); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	if _, be := users[username]; be {
		return nil, C.NewBadRequestError(
			"username_already_taken",
			fmt.Sprintf("Username %s is already taken", username),
			map[string]interface{}{},
		)
	}

	now := time.Now()

	user := &model.Annotator{
		Id:           len(users) + 1,
		Uuid:         uuid.NewString(),
		Username:     username,
		Email:        email,
		Password:     passwordHash,
		Role:         role,
		HospitalName: hospitalName,
		CreatedAt:    now,
		ModifiedAt:   now,
	}

	users[username] = user

	if e := saveDocument(ctx, l.store, UsersKey, users); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	return user, nil
}

// ユーザー名からユーザーを取得する。存在しない場合はnilを返す。
func (l *Ledger) FetchUser(
	ctx context.Context,
	username string,
) (*model.Annotator, error) {
	users := UsersDocument{}

	if e := loadDocument(ctx, l.store, UsersKey, &users); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	return users[username], nil
}

//----------------------------------------------------------------
// データセット
//----------------------------------------------------------------

// データセットを一括登録する。レコードが空の場合は失敗する。
// データセットIDはUUIDにより、レコードIDは取り込み順の連番により一意性を保証する。
func (l *Ledger) RegisterDataset(
	ctx context.Context,
	name string,
	description string,
	uploader *model.Annotator,
	records []*model.Record,
) (*model.Dataset, error) {
	if len(records) == 0 {
		return nil, C.EMPTY_INGEST_ERROR
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	datasets := DatasetsDocument{}

	if e := loadDocument(ctx, l.store, DatasetsKey, &datasets); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	now := time.Now()

	dataset := &model.Dataset{
		Id:          len(datasets) + 1,
		Uuid:        uuid.NewString(),
		Name:        name,
		Description: description,
		UploadedBy:  uploader.Id,
		UploadDate:  now,
		IsActive:    true,
		CreatedAt:   now,
	}

	for i, r := range records {
		r.Id = i + 1
		r.RecordNumber = i + 1
		r.DatasetId = dataset.Id
		if len(r.Uuid) == 0 {
			r.Uuid = uuid.NewString()
		}
	}

	datasets[dataset.Uuid] = &DatasetRecords{
		Dataset: dataset,
		Records: records,
	}

	if e := saveDocument(ctx, l.store, DatasetsKey, datasets); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	return dataset, nil
}

// 有効なデータセットの一覧をレコード数付きで取得する。波形は含まない。
func (l *Ledger) ListDatasets(
	ctx context.Context,
) ([]*model.DatasetEntity, error) {
	datasets := DatasetsDocument{}

	if e := loadDocument(ctx, l.store, DatasetsKey, &datasets); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	entities := []*model.DatasetEntity{}

	for _, d := range datasets {
		if !d.Dataset.IsActive {
			continue
		}

		entities = append(entities, &model.DatasetEntity{
			Dataset:     d.Dataset,
			RecordCount: len(d.Records),
		})
	}

	return entities, nil
}

func (l *Ledger) fetchDataset(
	ctx context.Context,
	datasetUuid string,
) (*DatasetRecords, error) {
	datasets := DatasetsDocument{}

	if e := loadDocument(ctx, l.store, DatasetsKey, &datasets); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	if d, be := datasets[datasetUuid]; !be {
		return nil, C.NewNotFoundError(
			"dataset_not_found",
			fmt.Sprintf("Dataset %s is not found", datasetUuid),
			map[string]interface{}{},
		)
	} else {
		return d, nil
	}
}

// データセット内のレコードを取得する。
func (l *Ledger) FetchRecord(
	ctx context.Context,
	datasetUuid string,
	recordId int,
) (*model.Record, error) {
	dataset, err := l.fetchDataset(ctx, datasetUuid)

	if err != nil {
		return nil, err
	}

	for _, r := range dataset.Records {
		if r.Id == recordId {
			return r, nil
		}
	}

	return nil, C.NewNotFoundError(
		"record_not_found",
		fmt.Sprintf("Record %d is not found in dataset %s", recordId, datasetUuid),
		map[string]interface{}{},
	)
}

//----------------------------------------------------------------
// アノテーション台帳
//----------------------------------------------------------------

// アノテーションを(ユーザー, データセット, レコード)キーでupsertする。
// 初回保存では役割と病院名のスナップショットを取り、以降の保存は内容と
// タイムスタンプを上書きする。キーあたりのライブな件数が増えることはない。
// レビュー済みのアノテーションを再提出した場合、状態は指定値に戻り
// レビュー情報は消去される。
func (l *Ledger) Save(
	ctx context.Context,
	user *model.Annotator,
	datasetUuid string,
	recordId int,
	content string,
	findings string,
	status C.AnnotationStatus,
	confidence *float64,
) (*model.Annotation, error) {
	if !C.IsAnnotatableStatus(status) {
		return nil, C.INVALID_STATUS(string(status))
	}

	dataset, err := l.fetchDataset(ctx, datasetUuid)

	if err != nil {
		return nil, err
	}

	if _, e := l.FetchRecord(ctx, datasetUuid, recordId); e != nil {
		return nil, e
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	annotations := AnnotationsDocument{}

	if e := loadDocument(ctx, l.store, AnnotationsKey, &annotations); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	if _, be := annotations[user.Username]; !be {
		annotations[user.Username] = map[string]map[string]*model.Annotation{}
	}
	if _, be := annotations[user.Username][datasetUuid]; !be {
		annotations[user.Username][datasetUuid] = map[string]*model.Annotation{}
	}

	now := time.Now()

	annotation := annotations[user.Username][datasetUuid][recordKey(recordId)]

	if annotation == nil {
		annotation = &model.Annotation{
			AnnotatorId:   user.Id,
			DatasetId:     dataset.Dataset.Id,
			RecordId:      recordId,
			AnnotatorRole: user.Role,
			HospitalName:  user.HospitalName,
			CreatedAt:     now,
		}
	}

	annotation.Content = content
	annotation.Findings = findings
	annotation.Status = status
	annotation.ConfidenceScore = confidence
	annotation.ModifiedAt = now
	annotation.ReviewedBy = nil
	annotation.ReviewedAt = nil
	annotation.ReviewNotes = nil

	annotations[user.Username][datasetUuid][recordKey(recordId)] = annotation

	if e := saveDocument(ctx, l.store, AnnotationsKey, annotations); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	return annotation, nil
}

// キーに対応するライブなアノテーションを取得する。存在しない場合はnilを返す。
// ユーザー・データセット・レコードの三段階の不在は、この一回の検索に畳み込まれる。
func (l *Ledger) Fetch(
	ctx context.Context,
	username string,
	datasetUuid string,
	recordId int,
) (*model.Annotation, error) {
	annotations := AnnotationsDocument{}

	if e := loadDocument(ctx, l.store, AnnotationsKey, &annotations); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	return annotations[username][datasetUuid][recordKey(recordId)], nil
}

// あるレコードに対する全アノテーターのライブなアノテーションを取得する。
func (l *Ledger) ListForRecord(
	ctx context.Context,
	datasetUuid string,
	recordId int,
) ([]*model.AnnotationView, error) {
	annotations := AnnotationsDocument{}

	if e := loadDocument(ctx, l.store, AnnotationsKey, &annotations); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	views := []*model.AnnotationView{}

	for username, byDataset := range annotations {
		if a, be := byDataset[datasetUuid][recordKey(recordId)]; be {
			views = append(views, &model.AnnotationView{
				Annotation:    a,
				AnnotatorName: username,
			})
		}
	}

	return views, nil
}

// アノテーションをレビュー済みとする。役割の確認は呼び出し側の責務。
func (l *Ledger) Review(
	ctx context.Context,
	username string,
	datasetUuid string,
	recordId int,
	reviewer *model.Annotator,
	notes string,
) (*model.Annotation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	annotations := AnnotationsDocument{}

	if e := loadDocument(ctx, l.store, AnnotationsKey, &annotations); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	annotation := annotations[username][datasetUuid][recordKey(recordId)]

	if annotation == nil {
		return nil, C.NewNotFoundError(
			"annotation_not_found",
			fmt.Sprintf("Annotation by %s is not found", username),
			map[string]interface{}{},
		)
	}

	now := time.Now()

	annotation.Status = C.StatusReviewed
	annotation.ReviewedBy = &reviewer.Id
	annotation.ReviewedAt = &now
	annotation.ReviewNotes = &notes

	if e := saveDocument(ctx, l.store, AnnotationsKey, annotations); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	return annotation, nil
}

//----------------------------------------------------------------
// 進捗・統計
//----------------------------------------------------------------

// あるユーザーのデータセット進捗を取得する。
func (l *Ledger) UserProgress(
	ctx context.Context,
	username string,
	datasetUuid string,
) (*model.UserProgress, error) {
	dataset, err := l.fetchDataset(ctx, datasetUuid)

	if err != nil {
		return nil, err
	}

	annotations := AnnotationsDocument{}

	if e := loadDocument(ctx, l.store, AnnotationsKey, &annotations); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	annotated := len(annotations[username][datasetUuid])
	total := len(dataset.Records)

	return &model.UserProgress{
		Annotated:  annotated,
		Total:      total,
		Percentage: model.CompletionRate(annotated, total),
	}, nil
}

// データセットのカバレッジを取得する。複数人が判定したレコードも一件として数える。
func (l *Ledger) DatasetCoverage(
	ctx context.Context,
	datasetUuid string,
) (*model.DatasetCoverage, error) {
	dataset, err := l.fetchDataset(ctx, datasetUuid)

	if err != nil {
		return nil, err
	}

	annotations := AnnotationsDocument{}

	if e := loadDocument(ctx, l.store, AnnotationsKey, &annotations); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	annotatedRecords := map[string]bool{}
	annotators := map[string]bool{}

	for username, byDataset := range annotations {
		for key := range byDataset[datasetUuid] {
			annotatedRecords[key] = true
			annotators[username] = true
		}
	}

	return &model.DatasetCoverage{
		TotalRecords:       len(dataset.Records),
		AnnotatedRecords:   len(annotatedRecords),
		DistinctAnnotators: len(annotators),
		CoveragePct:        model.CompletionRate(len(annotatedRecords), len(dataset.Records)),
	}, nil
}

// ユーザーの横断統計を取得する。
func (l *Ledger) UserStats(
	ctx context.Context,
	username string,
) (*model.UserStats, error) {
	annotations := AnnotationsDocument{}

	if e := loadDocument(ctx, l.store, AnnotationsKey, &annotations); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	stats := &model.UserStats{}

	for _, byRecord := range annotations[username] {
		if len(byRecord) > 0 {
			stats.DatasetsWorkedOn++
			stats.TotalAnnotations += len(byRecord)
		}
	}

	return stats, nil
}

//----------------------------------------------------------------
// ナビゲーション
//----------------------------------------------------------------

// ユーザーがデータセット内で再開すべきレコード位置を求める。
// 最後に保存されたアノテーション(保存タイムスタンプ順)の次のレコードを指す。
func (l *Ledger) ResumeIndex(
	ctx context.Context,
	username string,
	datasetUuid string,
) (*model.ResumePoint, error) {
	dataset, err := l.fetchDataset(ctx, datasetUuid)

	if err != nil {
		return nil, err
	}

	annotations := AnnotationsDocument{}

	if e := loadDocument(ctx, l.store, AnnotationsKey, &annotations); e != nil {
		return nil, C.KVS_OPERATION_ERROR(e)
	}

	lastId := 0
	var lastTime time.Time

	for key, a := range annotations[username][datasetUuid] {
		if a.ModifiedAt.After(lastTime) {
			lastTime = a.ModifiedAt
			lastId, _ = strconv.Atoi(key)
		}
	}

	if lastId == 0 {
		return &model.ResumePoint{Index: 0, Done: false}, nil
	}

	orderedIds := make([]int, 0, len(dataset.Records))
	for _, r := range dataset.Records {
		orderedIds = append(orderedIds, r.Id)
	}

	index, done := model.ResumePosition(orderedIds, lastId)

	return &model.ResumePoint{Index: index, Done: done}, nil
}
