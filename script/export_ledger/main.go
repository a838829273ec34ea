package main

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gorp.v2"

	C "github.com/shivesh2334-ai/ECG-LEVEL-4/constant"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/config"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/resource/kvs"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/resource/rds"
)

// リレーショナルデプロイの内容をフラットなKVSデプロイの三ドキュメントへ再生する。
// 空のKVSに対して実行することを想定しており、再実行時は先にドキュメントを消すこと。
func export(ctx context.Context, db *gorp.DbMap, ledger *kvs.Ledger) error {
	annotators, err := rds.ListAnnotators(db)

	if err != nil {
		return err
	}

	users := map[string]*model.Annotator{}

	for _, a := range annotators {
		user, e := ledger.RegisterUser(ctx, a.Username, a.Email, a.Password, a.Role, a.HospitalName)

		if e != nil {
			return e
		}

		users[a.Username] = user
	}

	datasets, err := rds.ListDatasets(db)

	if err != nil {
		return err
	}

	for _, entity := range datasets {
		records, e := rds.ListRecordsInDataset(db, entity.Dataset.Id)

		if e != nil {
			return e
		}

		// 台帳のレコードIDは取り込み順の連番となるため、元のIDと対応付けておく。
		recordIds := map[int]int{}

		for i, r := range records {
			recordIds[r.Id] = i + 1
		}

		uploader := users[entity.Uploader.Username]

		dataset, e := ledger.RegisterDataset(ctx, entity.Dataset.Name, entity.Dataset.Description, uploader, records)

		if e != nil {
			return e
		}

		for _, a := range annotators {
			annotations, e := rds.ListAnnotationsByUserInDataset(db, a.Id, entity.Dataset.Id)

			if e != nil {
				return e
			}

			for _, n := range annotations {
				status := n.Status

				// レビュー済みは確定として再生した後に、レビュー操作を適用する。
				if status == C.StatusReviewed {
					status = C.StatusConfirmed
				}

				user := users[a.Username]

				if _, e := ledger.Save(ctx, user, dataset.Uuid, recordIds[n.RecordId], n.Content, n.Findings, status, n.ConfidenceScore); e != nil {
					return e
				}

				if n.Status != C.StatusReviewed || n.ReviewedBy == nil {
					continue
				}

				reviewer, e := rds.InquireAnnotator(db, *n.ReviewedBy)

				if e != nil {
					return e
				}

				notes := ""
				if n.ReviewNotes != nil {
					notes = *n.ReviewNotes
				}

				if _, e := ledger.Review(ctx, a.Username, dataset.Uuid, recordIds[n.RecordId], users[reviewer.Username], notes); e != nil {
					return e
				}
			}
		}
	}

	return nil
}

func main() {
	config.SetupAll()

	store := lib.GetKVS()

	if store == nil {
		log.Fatal("KVS_ADDR is not configured")
	}

	db := lib.GetDB(lib.ReadDBKey)
	ledger := kvs.NewLedger(store)

	if e := export(context.Background(), db, ledger); e != nil {
		log.Fatalf("Failed to export to the ledger: %v", e)
	}

	fmt.Println("OK")
}
