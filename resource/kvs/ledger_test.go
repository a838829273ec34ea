package kvs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
)

func testUser(id int, username string, role C.Role) *model.Annotator {
	return &model.Annotator{
		Id:           id,
		Username:     username,
		Role:         role,
		HospitalName: "Central Hospital",
	}
}

func testRecords(n int) []*model.Record {
	records := make([]*model.Record, n)
	for i := 0; i < n; i++ {
		records[i] = &model.Record{
			PatientId:    fmt.Sprintf("P%03d", i+1),
			HeartRate:    C.DefaultHeartRate,
			PrInterval:   C.DefaultPRInterval,
			QrsDuration:  C.DefaultQRSDuration,
			QtInterval:   C.DefaultQTInterval,
			AutoAnalysis: C.DefaultAutoAnalysis,
			SamplingRate: C.DefaultSamplingRate,
		}
	}
	return records
}

func TestLedger_RegisterUser(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	alice, err := ledger.RegisterUser(ctx, "alice", "alice@example.com", "hash", C.RoleAnnotator, "Central Hospital")
	assert.NoError(t, err)
	assert.Equal(t, 1, alice.Id)
	assert.Equal(t, C.RoleAnnotator, alice.Role)

	// ユーザー名の重複。
	_, err = ledger.RegisterUser(ctx, "alice", "other@example.com", "hash", C.RoleAnnotator, "")
	if assert.Error(t, err) {
		assert.IsType(t, &C.BadRequestError{}, err)
	}

	// 不正な役割。
	_, err = ledger.RegisterUser(ctx, "bob", "bob@example.com", "hash", C.Role("superuser"), "")
	if assert.Error(t, err) {
		assert.IsType(t, &C.BadRequestError{}, err)
	}

	fetched, err := ledger.FetchUser(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, alice.Uuid, fetched.Uuid)

	// 存在しないユーザーはnil。
	fetched, err = ledger.FetchUser(ctx, "carol")
	assert.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestLedger_RegisterDataset(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	uploader := testUser(1, "admin", C.RoleAdmin)

	// 空のバッチは拒否。
	_, err := ledger.RegisterDataset(ctx, "empty", "", uploader, []*model.Record{})
	if assert.Error(t, err) {
		assert.IsType(t, &C.BadRequestError{}, err)
	}

	dataset, err := ledger.RegisterDataset(ctx, "batch-1", "first batch", uploader, testRecords(3))
	assert.NoError(t, err)
	assert.NotEmpty(t, dataset.Uuid)
	assert.True(t, dataset.IsActive)

	// レコードIDは取り込み順の連番。
	for i := 1; i <= 3; i++ {
		r, err := ledger.FetchRecord(ctx, dataset.Uuid, i)
		assert.NoError(t, err)
		assert.Equal(t, i, r.RecordNumber)
	}

	// 存在しないレコード。
	_, err = ledger.FetchRecord(ctx, dataset.Uuid, 4)
	if assert.Error(t, err) {
		assert.IsType(t, &C.NotFoundError{}, err)
	}

	// 存在しないデータセット。
	_, err = ledger.FetchRecord(ctx, "no-such-uuid", 1)
	if assert.Error(t, err) {
		assert.IsType(t, &C.NotFoundError{}, err)
	}

	entities, err := ledger.ListDatasets(ctx)
	assert.NoError(t, err)
	if assert.Equal(t, 1, len(entities)) {
		assert.Equal(t, 3, entities[0].RecordCount)
	}
}

func TestLedger_SaveUpsert(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	alice := testUser(1, "alice", C.RoleAnnotator)

	dataset, err := ledger.RegisterDataset(ctx, "batch-1", "", testUser(9, "admin", C.RoleAdmin), testRecords(3))
	assert.NoError(t, err)

	first, err := ledger.Save(ctx, alice, dataset.Uuid, 1, "Normal sinus rhythm", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)
	assert.Equal(t, C.StatusConfirmed, first.Status)
	assert.Equal(t, C.RoleAnnotator, first.AnnotatorRole)
	assert.Equal(t, "Central Hospital", first.HospitalName)

	// 同一キーへの再保存は上書きであり、件数は増えない。
	score := 0.8
	second, err := ledger.Save(ctx, alice, dataset.Uuid, 1, "Atrial fibrillation", "irregular RR", C.StatusUnsure, &score)
	assert.NoError(t, err)
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())

	stats, err := ledger.UserStats(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.TotalAnnotations)

	fetched, err := ledger.Fetch(ctx, "alice", dataset.Uuid, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Atrial fibrillation", fetched.Content)
	assert.Equal(t, C.StatusUnsure, fetched.Status)
	if assert.NotNil(t, fetched.ConfidenceScore) {
		assert.Equal(t, 0.8, *fetched.ConfidenceScore)
	}

	// 未保存のキーはnil。
	fetched, err = ledger.Fetch(ctx, "alice", dataset.Uuid, 2)
	assert.NoError(t, err)
	assert.Nil(t, fetched)

	// reviewedでの直接保存は拒否。
	_, err = ledger.Save(ctx, alice, dataset.Uuid, 2, "x", "", C.StatusReviewed, nil)
	if assert.Error(t, err) {
		assert.IsType(t, &C.BadRequestError{}, err)
	}

	// 存在しないレコードへの保存は拒否。
	_, err = ledger.Save(ctx, alice, dataset.Uuid, 99, "x", "", C.StatusConfirmed, nil)
	if assert.Error(t, err) {
		assert.IsType(t, &C.NotFoundError{}, err)
	}
}

func TestLedger_SaveAdvancesModifiedAt(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	alice := testUser(1, "alice", C.RoleAnnotator)

	dataset, err := ledger.RegisterDataset(ctx, "batch-1", "", testUser(9, "admin", C.RoleAdmin), testRecords(1))
	assert.NoError(t, err)

	first, err := ledger.Save(ctx, alice, dataset.Uuid, 1, "Normal sinus rhythm", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)

	time.Sleep(time.Millisecond)

	// 上書き保存で保存時刻は進み、作成時刻は変わらない。
	second, err := ledger.Save(ctx, alice, dataset.Uuid, 1, "Atrial fibrillation", "", C.StatusUnsure, nil)
	assert.NoError(t, err)
	assert.True(t, second.ModifiedAt.After(first.ModifiedAt))
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
}

func TestLedger_ReviewAndResubmit(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	alice := testUser(1, "alice", C.RoleAnnotator)
	expert := testUser(2, "expert", C.RoleExpert)

	dataset, err := ledger.RegisterDataset(ctx, "batch-1", "", testUser(9, "admin", C.RoleAdmin), testRecords(2))
	assert.NoError(t, err)

	_, err = ledger.Save(ctx, alice, dataset.Uuid, 1, "Normal", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)

	reviewed, err := ledger.Review(ctx, "alice", dataset.Uuid, 1, expert, "looks correct")
	assert.NoError(t, err)
	assert.Equal(t, C.StatusReviewed, reviewed.Status)
	if assert.NotNil(t, reviewed.ReviewedBy) {
		assert.Equal(t, expert.Id, *reviewed.ReviewedBy)
	}
	assert.NotNil(t, reviewed.ReviewedAt)

	// レビュー後も本文は変更されない。
	assert.Equal(t, "Normal", reviewed.Content)

	// 再提出で状態は戻り、レビュー情報は消去される。
	resubmitted, err := ledger.Save(ctx, alice, dataset.Uuid, 1, "Normal, rechecked", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)
	assert.Equal(t, C.StatusConfirmed, resubmitted.Status)
	assert.Nil(t, resubmitted.ReviewedBy)
	assert.Nil(t, resubmitted.ReviewedAt)
	assert.Nil(t, resubmitted.ReviewNotes)

	// 未保存のアノテーションへのレビュー。
	_, err = ledger.Review(ctx, "alice", dataset.Uuid, 2, expert, "")
	if assert.Error(t, err) {
		assert.IsType(t, &C.NotFoundError{}, err)
	}
}

func TestLedger_ProgressAndCoverage(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	alice := testUser(1, "alice", C.RoleAnnotator)
	bob := testUser(2, "bob", C.RoleAnnotator)

	dataset, err := ledger.RegisterDataset(ctx, "batch-1", "", testUser(9, "admin", C.RoleAdmin), testRecords(4))
	assert.NoError(t, err)

	// alice: 1, 2 / bob: 2, 3
	_, err = ledger.Save(ctx, alice, dataset.Uuid, 1, "a", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)
	_, err = ledger.Save(ctx, alice, dataset.Uuid, 2, "a", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)
	_, err = ledger.Save(ctx, bob, dataset.Uuid, 2, "b", "", C.StatusUnsure, nil)
	assert.NoError(t, err)
	_, err = ledger.Save(ctx, bob, dataset.Uuid, 3, "b", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)

	progress, err := ledger.UserProgress(ctx, "alice", dataset.Uuid)
	assert.NoError(t, err)
	assert.Equal(t, 2, progress.Annotated)
	assert.Equal(t, 4, progress.Total)
	assert.Equal(t, 50.0, progress.Percentage)

	// 上書き保存で進捗は増えない。
	_, err = ledger.Save(ctx, alice, dataset.Uuid, 2, "a2", "", C.StatusUnsure, nil)
	assert.NoError(t, err)

	progress, err = ledger.UserProgress(ctx, "alice", dataset.Uuid)
	assert.NoError(t, err)
	assert.Equal(t, 2, progress.Annotated)

	// レコード2は二人が判定しても一件。
	coverage, err := ledger.DatasetCoverage(ctx, dataset.Uuid)
	assert.NoError(t, err)
	assert.Equal(t, 4, coverage.TotalRecords)
	assert.Equal(t, 3, coverage.AnnotatedRecords)
	assert.Equal(t, 2, coverage.DistinctAnnotators)
	assert.Equal(t, 75.0, coverage.CoveragePct)

	// 未着手のユーザー。
	progress, err = ledger.UserProgress(ctx, "carol", dataset.Uuid)
	assert.NoError(t, err)
	assert.Equal(t, 0, progress.Annotated)
	assert.Equal(t, 0.0, progress.Percentage)
}

func TestLedger_ListForRecord(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	alice := testUser(1, "alice", C.RoleAnnotator)
	bob := testUser(2, "bob", C.RoleExpert)

	dataset, err := ledger.RegisterDataset(ctx, "batch-1", "", testUser(9, "admin", C.RoleAdmin), testRecords(2))
	assert.NoError(t, err)

	_, err = ledger.Save(ctx, alice, dataset.Uuid, 1, "a", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)
	_, err = ledger.Save(ctx, bob, dataset.Uuid, 1, "b", "", C.StatusUnsure, nil)
	assert.NoError(t, err)
	_, err = ledger.Save(ctx, alice, dataset.Uuid, 2, "a", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)

	views, err := ledger.ListForRecord(ctx, dataset.Uuid, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(views))

	names := map[string]C.Role{}
	for _, v := range views {
		names[v.AnnotatorName] = v.AnnotatorRole
	}
	assert.Equal(t, C.RoleAnnotator, names["alice"])
	assert.Equal(t, C.RoleExpert, names["bob"])

	// 判定の無いレコードは空。
	views, err = ledger.ListForRecord(ctx, dataset.Uuid, 2)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(views))
}

func TestLedger_ResumeIndex(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	alice := testUser(1, "alice", C.RoleAnnotator)

	dataset, err := ledger.RegisterDataset(ctx, "batch-1", "", testUser(9, "admin", C.RoleAdmin), testRecords(3))
	assert.NoError(t, err)

	// 未着手は先頭から。
	resume, err := ledger.ResumeIndex(ctx, "alice", dataset.Uuid)
	assert.NoError(t, err)
	assert.Equal(t, 0, resume.Index)
	assert.False(t, resume.Done)

	// 最後に保存したレコードの次を指す。
	_, err = ledger.Save(ctx, alice, dataset.Uuid, 1, "a", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)

	resume, err = ledger.ResumeIndex(ctx, "alice", dataset.Uuid)
	assert.NoError(t, err)
	assert.Equal(t, 1, resume.Index)
	assert.False(t, resume.Done)

	// 保存順はタイムスタンプに従う。レコード3の後にレコード2を保存した場合は
	// レコード2の次を指す。
	_, err = ledger.Save(ctx, alice, dataset.Uuid, 3, "a", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)
	_, err = ledger.Save(ctx, alice, dataset.Uuid, 2, "a", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)

	resume, err = ledger.ResumeIndex(ctx, "alice", dataset.Uuid)
	assert.NoError(t, err)
	assert.Equal(t, 2, resume.Index)
	assert.False(t, resume.Done)

	// 最終レコードの保存後は先頭に巻き戻り、完了が通知される。
	_, err = ledger.Save(ctx, alice, dataset.Uuid, 3, "a", "", C.StatusConfirmed, nil)
	assert.NoError(t, err)

	resume, err = ledger.ResumeIndex(ctx, "alice", dataset.Uuid)
	assert.NoError(t, err)
	assert.Equal(t, 0, resume.Index)
	assert.True(t, resume.Done)
}
